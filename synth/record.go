package synth

import (
	"fmt"
	"strings"
)

// Record is one composed object, keyed by field name.
type Record map[string]any

// Field binds a name to the producer of its values.
type Field struct {
	Name     string
	Producer Producer[any]
}

// Object composes independent producers into one Record per call.
type Object struct {
	fields []Field
}

// NewObject creates an Object over fields. Field names must be unique.
func NewObject(fields ...Field) (*Object, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field name must not be empty", ErrInvalidArgument)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidArgument, f.Name)
		}
		if f.Producer == nil {
			return nil, fmt.Errorf("%w: field %q has no producer", ErrInvalidArgument, f.Name)
		}
		seen[f.Name] = true
	}
	return &Object{fields: fields}, nil
}

// FieldNames returns field names in declaration order.
func (o *Object) FieldNames() []string {
	names := make([]string, len(o.fields))
	for i, f := range o.fields {
		names[i] = f.Name
	}
	return names
}

// Next draws every field once, in declaration order.
func (o *Object) Next() (Record, error) {
	rec := make(Record, len(o.fields))
	for _, f := range o.fields {
		v, err := f.Producer.Next()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rec[f.Name] = v
	}
	return rec, nil
}

// Erase adapts a typed producer to Producer[any] for use as a Field.
func Erase[T any](p Producer[T]) Producer[any] {
	return ProducerFunc[any](func() (any, error) {
		v, err := p.Next()
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// DefaultZipFields names the columns of a zip code resource.
var DefaultZipFields = []string{"Zip", "Lat", "Lon"}

// CSVObject draws a state whose label holds comma-separated values and maps
// them onto named fields.
type CSVObject struct {
	index  *CategoricalIndex
	fields []string
}

// NewCSVObject creates a CSVObject over index.
func NewCSVObject(index *CategoricalIndex, fields []string) *CSVObject {
	return &CSVObject{index: index, fields: fields}
}

// Index returns the underlying CategoricalIndex.
func (c *CSVObject) Index() *CategoricalIndex { return c.index }

// Next splits the drawn label and assigns the first min(values, fields)
// trimmed values.
func (c *CSVObject) Next() (map[string]string, error) {
	values := strings.Split(c.index.Next(), ",")
	n := min(len(values), len(c.fields))
	rec := make(map[string]string, n)
	for i := 0; i < n; i++ {
		rec[c.fields[i]] = strings.TrimSpace(values[i])
	}
	return rec, nil
}

// FullNames joins a first name and a last name.
type FullNames struct {
	first, last *CategoricalIndex
}

// NewFullNames creates a FullNames producer.
func NewFullNames(first, last *CategoricalIndex) *FullNames {
	return &FullNames{first: first, last: last}
}

func (f *FullNames) Next() (string, error) {
	return f.first.Next() + " " + f.last.Next(), nil
}
