package wire

import (
	"errors"
	"fmt"
	"time"

	"github.com/PAICookers/PAIlib/pkg/log"
	"github.com/PAICookers/PAIlib/pkg/model"
)

// Codec packs parameter models into register images and back. The zero
// value is ready to use and logs nothing.
type Codec struct {
	// Logger receives pack and unpack events. Nil disables logging.
	Logger log.Logger
}

// Pack lays out the model's field values into a register image of the
// schema's exact width.
func (c *Codec) Pack(m *model.ParameterModel) (RegisterImage, error) {
	schema := m.Schema()
	values := m.Snapshot()
	img := NewRegisterImage(schema.TotalBits)

	off := 0
	for _, f := range schema.Fields {
		vs := values[f.ModelName]
		for _, v := range vs {
			raw, err := f.WireValue(v)
			if err != nil {
				c.log(log.Event{
					Category: log.CategoryPack,
					Kind:     schema.Kind.String(),
					Model:    m.Name(),
					Field:    f.ModelName,
					Err:      err.Error(),
				})
				return RegisterImage{}, fmt.Errorf("packing %s: %w", f.ModelName, err)
			}
			img.setSpan(off, f.Bits, raw)
			off += f.Bits
		}
	}

	c.log(log.Event{
		Category: log.CategoryPack,
		Kind:     schema.Kind.String(),
		Model:    m.Name(),
		Detail:   fmt.Sprintf("%d bits", img.BitLen()),
	})
	return img, nil
}

// Unpack decodes a register image against a schema and rebuilds the
// parameter model, including its read-only fields. A wrong image length
// fails immediately; everything else is scanned to the end and reported
// together in a *ValidationError.
func (c *Codec) Unpack(img RegisterImage, schema *model.RegisterSchema) (*model.ParameterModel, error) {
	if img.BitLen() != schema.TotalBits {
		err := fmt.Errorf("%w: image is %d bits, %s layout is %d",
			ErrLengthMismatch, img.BitLen(), schema.Kind, schema.TotalBits)
		c.log(log.Event{
			Category: log.CategoryUnpack,
			Kind:     schema.Kind.String(),
			Err:      err.Error(),
		})
		return nil, err
	}

	values := make(map[string][]int64, len(schema.Fields))
	decodeFailed := make(map[string]*model.FieldError)
	off := 0
	for _, f := range schema.Fields {
		vs := make([]int64, f.Arity)
		for i := range vs {
			raw := img.span(off, f.Bits)
			off += f.Bits

			v, err := f.ValueFromWire(raw)
			if err != nil {
				// Keep the offset walk going so later fields still decode
				// from their own spans.
				if decodeFailed[f.ModelName] == nil {
					decodeFailed[f.ModelName] = &model.FieldError{Field: f.ModelName, Err: err}
				}
				continue
			}
			vs[i] = v
		}
		if decodeFailed[f.ModelName] == nil {
			values[f.ModelName] = vs
		}
	}

	m, err := model.FromWireValues(schema, values)
	if err != nil || len(decodeFailed) > 0 {
		aggErr := mergeUnpackErrors(schema, decodeFailed, err)
		c.log(log.Event{
			Category: log.CategoryUnpack,
			Kind:     schema.Kind.String(),
			Err:      aggErr.Error(),
		})
		return nil, aggErr
	}

	c.log(log.Event{
		Category: log.CategoryUnpack,
		Kind:     schema.Kind.String(),
		Model:    m.Name(),
		Detail:   fmt.Sprintf("%d bits", img.BitLen()),
	})
	return m, nil
}

// mergeUnpackErrors folds decode failures and validation failures into
// one aggregate, in schema field order. Fields withheld from validation
// because their bit pattern did not decode drop the resulting missing-field
// noise; the decode error is the real diagnosis.
func mergeUnpackErrors(schema *model.RegisterSchema, decodeFailed map[string]*model.FieldError, err error) error {
	byField := make(map[string][]*model.FieldError, len(decodeFailed))
	for name, fe := range decodeFailed {
		byField[name] = append(byField[name], fe)
	}

	if err != nil {
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, fe := range verr.Fields {
			if decodeFailed[fe.Field] != nil && errors.Is(fe.Err, model.ErrMissingField) {
				continue
			}
			byField[fe.Field] = append(byField[fe.Field], fe)
		}
	}

	merged := &model.ValidationError{}
	for _, f := range schema.Fields {
		merged.Fields = append(merged.Fields, byField[f.ModelName]...)
	}
	return merged
}

func (c *Codec) log(ev log.Event) {
	if c.Logger == nil {
		return
	}
	ev.Timestamp = time.Now()
	c.Logger.Log(ev)
}

// Pack packs a model with a codec that does not log.
func Pack(m *model.ParameterModel) (RegisterImage, error) {
	var c Codec
	return c.Pack(m)
}

// Unpack decodes an image with a codec that does not log.
func Unpack(img RegisterImage, schema *model.RegisterSchema) (*model.ParameterModel, error) {
	var c Codec
	return c.Unpack(img, schema)
}
