package templates

// Success is shown after an accepted submission when the form has no
// redirect URL configured.
const Success = `
{{ define "content" }}
	<div class="public-form form-success">
		<h1>{{ .form.Title }}</h1>
		<p class="success-message">{{ .message }}</p>
		<a href="/f/{{ .form.Slug }}">Voltar ao formulário</a>
	</div>
{{ end }}
`
