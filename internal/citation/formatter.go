package citation

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/matsen/refcite/internal/reference"
	"github.com/matsen/refcite/internal/store"
)

// DefaultMaxAuthors is the number of authors listed before "et al".
const DefaultMaxAuthors = 4

// Formatter renders citations. The zero value is ready to use.
type Formatter struct {
	MaxAuthors int          // Zero means DefaultMaxAuthors
	Renderers  Registry     // Nil means DefaultRegistry()
	Logger     *slog.Logger // Nil means slog.Default()
}

func (f Formatter) maxAuthors() int {
	if f.MaxAuthors <= 0 {
		return DefaultMaxAuthors
	}
	return f.MaxAuthors
}

func (f Formatter) registry() Registry {
	if f.Renderers == nil {
		return DefaultRegistry()
	}
	return f.Renderers
}

func (f Formatter) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

// AddShort writes the emphasized record name.
func (f Formatter) AddShort(sink Sink, rec reference.Record) {
	sink.Emphasis(func() { sink.AppendText(rec.Name) })
}

// Cite writes a short citation for name and marks it used in u. An unknown
// name writes the placeholder "[ref? name]" and logs a warning instead.
func (f Formatter) Cite(sink Sink, s *store.Store, u *store.Usage, name string) {
	rec, err := s.Get(name)
	if err != nil {
		sink.AppendText("[ref? " + name + "]")
		f.logger().Warn("missing reference", "name", name)
		return
	}
	u.MarkUsed(rec.Name)
	f.AddShort(sink, rec)
}

// Validate checks that rec has every field its full citation needs.
func (f Formatter) Validate(rec reference.Record) error {
	rend, err := f.registry().Lookup(rec.Type)
	if err != nil {
		return err
	}
	return validate(rec, rend)
}

func validate(rec reference.Record, rend Renderer) error {
	for _, field := range append([]string{"year", "title"}, rend.Required()...) {
		if strings.TrimSpace(rec.Field(field)) == "" {
			return &MissingFieldError{Name: rec.Name, Type: rec.Type, Field: field}
		}
	}
	return nil
}

// AddFull writes a full bibliography entry for rec as a new block. Nothing
// is written when the record cannot be rendered.
func (f Formatter) AddFull(sink Sink, rec reference.Record) error {
	rend, err := f.registry().Lookup(rec.Type)
	if err != nil {
		return err
	}
	if err := validate(rec, rend); err != nil {
		return err
	}

	sink.StartBlock()
	f.authors(sink, rec.Authors)

	year := rec.Year
	if rec.EditionPublished != "" {
		year += " [" + rec.EditionPublished + "]"
	}
	if len(rec.Authors) > 0 {
		year = " " + year
	}
	sink.AppendText(year + ".")

	rend.Body(sink, rec)
	return nil
}

func (f Formatter) authors(sink Sink, authors []string) {
	if len(authors) == 0 {
		return
	}
	limit := f.maxAuthors()
	shown := authors
	if len(shown) > limit {
		shown = shown[:limit]
	}

	names := make([]string, len(shown))
	for i, a := range shown {
		names[i] = FormatName(a)
	}
	list := strings.Join(names, ", ")

	if len(authors) > limit {
		sink.AppendText(list + ", ")
		sink.Emphasis(func() { sink.AppendText("et al") })
		sink.AppendText(".")
		return
	}
	sink.AppendText(sentence(list))
}

// Bibliography writes a full entry for every record marked in u, in
// identifier order. A record that fails to render is skipped; all such
// errors are returned joined.
func (f Formatter) Bibliography(sink Sink, s *store.Store, u *store.Usage) error {
	var errs []error
	for _, rec := range s.Used(u) {
		if err := f.AddFull(sink, rec); err != nil {
			f.logger().Warn("cannot render reference", "name", rec.Name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
