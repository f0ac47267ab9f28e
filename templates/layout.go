package templates

// Layout is the main public site template.  It includes the header and
// footer and embeds the content for every other page.  Design colors of
// the rendered form are applied inline.
var Layout = `
{{ define "layout" }}
<!DOCTYPE html>
<html lang="pt-BR">
	<head>
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<link rel="stylesheet" href="/assets/forms.css">
		<script src="/assets/forms.js" defer></script>
		<title>{{ with .title }}{{ . }}{{ else }}Prefeitura Municipal de Timon{{ end }}</title>
	</head>
	<body{{ with .design }} style="background-color: {{ .BackgroundColor }}; color: {{ .TextColor }}"{{ end }}>
		<header class="site-header">
			<div class="container">
				<a class="brand" href="https://timon.ma.gov.br">Prefeitura Municipal de Timon</a>
			</div>
		</header>
		<main class="container">
			{{ template "content" . }}
		</main>
		<footer class="site-footer">
			<div class="container">
				<span>© Prefeitura Municipal de Timon</span>
				<a href="https://timon.ma.gov.br/acessoainformacao">Acesso à Informação</a>
				<a href="https://timon.ma.gov.br/ouvidoria">Ouvidoria</a>
			</div>
		</footer>
	</body>
</html>
{{ end }}
`
