package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// RenderLayout wraps body in the document shell shared by every page.
func RenderLayout(title, body string) string {
	return fmt.Sprintf("<!doctype html><html lang=\"es\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title><link rel=\"stylesheet\" href=\"/assets/app.css\"></head><body>%s%s<script src=\"/assets/app.js\"></script></body></html>", title, body, CSRFFormScript())
}

// Page returns body wrapped in the shared layout as a renderable component.
func Page(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, RenderLayout(title, body))
		return err
	})
}
