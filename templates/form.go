package templates

// Form renders a public form.  Fields arrive pre-sorted by order as
// view structs; conditional visibility rules are emitted as data
// attributes for the small client-side script shipped with the site
// assets.
const Form = `
{{ define "content" }}
	<div class="public-form theme-{{ .form.Design.Theme }} layout-{{ .form.Design.Layout }}">
		<h1>{{ .form.Title }}</h1>
		<p class="form-description">{{ .form.Description }}</p>
		{{ with .notice }}<div class="form-notice">{{ . }}</div>{{ end }}
		<form method="post" action="/f/{{ .form.Slug }}">
			{{ range $field := .fields }}
				{{ if eq $field.Type "separator" }}
					<hr id="{{ $field.ID }}" class="field-separator">
				{{ else if eq $field.Type "html" }}
					<div id="{{ $field.ID }}" class="field-html">{{ $field.Content }}</div>
				{{ else }}
					<div class="field {{ if $field.Required }}required{{ end }}" id="wrap-{{ $field.ID }}"
						{{ if $field.ShowIf }}data-showif-field="{{ $field.ShowIf.FieldID }}" data-showif-op="{{ $field.ShowIf.Operator }}" data-showif-value="{{ $field.ShowIf.Value }}"{{ end }}>
						<label for="{{ $field.ID }}">{{ $field.Label }}{{ if $field.Required }} *{{ end }}</label>
						{{ if eq $field.Type "textarea" }}
							<textarea id="{{ $field.ID }}" name="{{ $field.ID }}" placeholder="{{ $field.Placeholder }}">{{ $field.Value }}</textarea>
						{{ else if eq $field.Type "select" }}
							<select id="{{ $field.ID }}" name="{{ $field.ID }}">
								<option value="">Selecione...</option>
								{{ range $opt := $field.Options }}
									<option value="{{ $opt.Value }}" {{ if eq $opt.Value $field.Value }}selected{{ end }}>{{ $opt.Label }}</option>
								{{ end }}
							</select>
						{{ else if eq $field.Type "radio" }}
							{{ range $opt := $field.Options }}
								<label class="option"><input type="radio" name="{{ $field.ID }}" value="{{ $opt.Value }}" {{ if eq $opt.Value $field.Value }}checked{{ end }}> {{ $opt.Label }}</label>
							{{ end }}
						{{ else if eq $field.Type "checkbox" }}
							{{ range $opt := $field.Options }}
								<label class="option"><input type="checkbox" name="{{ $field.ID }}" value="{{ $opt.Value }}" {{ if $field.Selected $opt.Value }}checked{{ end }}> {{ $opt.Label }}</label>
							{{ end }}
						{{ else if eq $field.Type "date" }}
							<input type="date" id="{{ $field.ID }}" name="{{ $field.ID }}" value="{{ $field.Value }}">
						{{ else if eq $field.Type "file" }}
							<input type="file" id="{{ $field.ID }}" name="{{ $field.ID }}">
						{{ else if eq $field.Type "number" }}
							<input type="number" id="{{ $field.ID }}" name="{{ $field.ID }}" value="{{ $field.Value }}" placeholder="{{ $field.Placeholder }}">
						{{ else if eq $field.Type "email" }}
							<input type="email" id="{{ $field.ID }}" name="{{ $field.ID }}" value="{{ $field.Value }}" placeholder="{{ $field.Placeholder }}">
						{{ else }}
							<input type="text" id="{{ $field.ID }}" name="{{ $field.ID }}" value="{{ $field.Value }}" placeholder="{{ $field.Placeholder }}">
						{{ end }}
						{{ with $field.Description }}<span class="help">{{ . }}</span>{{ end }}
						{{ with $field.Error }}<span class="field-error">{{ . }}</span>{{ end }}
					</div>
				{{ end }}
			{{ end }}
			{{ if .honeypot }}
				<div class="hp-field" aria-hidden="true"><input type="text" name="website" tabindex="-1" autocomplete="off"></div>
			{{ end }}
			<button type="submit" style="background-color: {{ .form.Design.PrimaryColor }}">{{ .form.Settings.SubmitButtonText }}</button>
		</form>
	</div>
{{ end }}
`
