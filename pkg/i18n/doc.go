// Package i18n renders validation errors and interface strings from
// message catalogs.
//
// A catalog maps languages to nested message keys and is loaded through a
// TranslationAdapter: MapAdapter for in-memory data, FileAdapter for a
// single YAML or JSON file, FSAdapter for a directory in an fs.FS. The
// package embeds a default catalog with English and Spanish validation
// messages:
//
//	tr, err := i18n.NewCatalog(ctx)
//	if err != nil {
//	    return err
//	}
//	lang := tr.Match("es-MX, en;q=0.5") // "es"
//	for _, msg := range tr.Failures(lang, field.Errors) {
//	    fmt.Println(msg)
//	}
//
// Messages use named placeholders, %{name}, filled from the error's
// translation values. Language negotiation is done with
// golang.org/x/text/language.
package i18n
