// Package htmlscrape reúne las ayudas sobre goquery que comparten los
// proveedores HTML.
package htmlscrape

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Parse construye el documento a partir del cuerpo de la respuesta. El
// charset se detecta por BOM o <meta> y se convierte a UTF-8.
func Parse(body []byte) (*goquery.Document, error) {
	r, err := charset.NewReader(bytes.NewReader(body), "")
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(r)
}

// Text devuelve el texto de la selección con los espacios colapsados.
// Una selección vacía da "".
func Text(s *goquery.Selection) string {
	if s == nil {
		return ""
	}
	return strings.Join(strings.Fields(s.Text()), " ")
}

// ClassWithPrefix sirve para clases moduladas, ej. "icon--ff-impact-red".
// Solo mira el primer nodo de s.
func ClassWithPrefix(s *goquery.Selection, prefix string) (string, bool) {
	class, ok := s.Attr("class")
	if !ok {
		return "", false
	}
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, prefix) {
			return c, true
		}
	}
	return "", false
}
