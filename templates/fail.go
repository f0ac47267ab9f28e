package templates

// Fail renders an error page inside the site chrome.
const Fail = `
{{ define "content" }}
	<div class="public-form form-fail">
		<h1>{{ .StatusCode }}: {{ .StatusText }}</h1>
		<p class="fail-message">{{ .Message }}</p>
		<a href="https://timon.ma.gov.br">Voltar ao site da Prefeitura</a>
	</div>
{{ end }}
`
