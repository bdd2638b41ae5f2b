package adapter

// TemplateRenderer renders named email templates.
type TemplateRenderer interface {
	// Render returns the HTML and plain-text bodies for templateName.
	Render(templateName string, data interface{}) (html string, text string, err error)
}
