package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dot5enko/blockframe/bits"
	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/schema"
)

// object cell tags
const (
	tagNil uint8 = iota
	tagBool
	tagInt64
	tagFloat64
	tagComplex128
	tagString
	tagTime
	tagInt
)

func encodeValues(w *bits.BitWriter, values *block.Values) error {
	switch d := values.Data().(type) {
	case []bool:
		for _, v := range d {
			w.PutBool(v)
		}
	case []int64:
		for _, v := range d {
			w.PutInt64(v)
		}
	case []float64:
		for _, v := range d {
			w.PutFloat64(v)
		}
	case []complex128:
		for _, v := range d {
			w.PutComplex128(v)
		}
	case []any:
		for _, v := range d {
			if err := encodeObject(w, v); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: buffer %T", ErrUnsupportedValue, d)
	}
	return nil
}

func encodeObject(w *bits.BitWriter, v any) error {
	switch x := v.(type) {
	case nil:
		w.WriteByte(tagNil)
	case bool:
		w.WriteByte(tagBool)
		w.PutBool(x)
	case int64:
		w.WriteByte(tagInt64)
		w.PutInt64(x)
	case int:
		w.WriteByte(tagInt)
		w.PutInt64(int64(x))
	case float64:
		w.WriteByte(tagFloat64)
		w.PutFloat64(x)
	case complex128:
		w.WriteByte(tagComplex128)
		w.PutComplex128(x)
	case string:
		w.WriteByte(tagString)
		w.PutString(x)
	case time.Time:
		w.WriteByte(tagTime)
		w.PutInt64(x.UnixNano())
	default:
		return fmt.Errorf("%w: object cell of type %T", ErrUnsupportedValue, v)
	}
	return nil
}

func decodeValues(raw []byte, typ schema.FieldType, rows, cols int) (*block.Values, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: dtype %d", ErrCorrupt, uint8(typ))
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: shape %dx%d", ErrCorrupt, rows, cols)
	}

	// objects take at least their tag byte
	if size := max(typ.Size(), 1); len(raw) < rows*cols*size || (typ.Size() > 0 && len(raw) != rows*cols*size) {
		return nil, fmt.Errorf("%w: %d bytes for a %dx%d %s matrix", ErrCorrupt, len(raw), rows, cols, typ)
	}

	values := block.NewValues(typ, rows, cols)
	r := bits.NewReader(bytes.NewReader(raw), binary.LittleEndian)

	var err error
	switch d := values.Data().(type) {
	case []bool:
		for i := range d {
			if d[i], err = r.ReadBool(); err != nil {
				return nil, err
			}
		}
	case []int64:
		for i := range d {
			if d[i], err = r.ReadI64(); err != nil {
				return nil, err
			}
		}
	case []float64:
		for i := range d {
			if d[i], err = r.ReadF64(); err != nil {
				return nil, err
			}
		}
	case []complex128:
		for i := range d {
			if d[i], err = r.ReadComplex128(); err != nil {
				return nil, err
			}
		}
	case []any:
		for i := range d {
			if d[i], err = decodeObject(r); err != nil {
				return nil, err
			}
		}
	}
	return values, nil
}

func decodeObject(r *bits.BitsReader) (any, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagNil:
		return nil, nil
	case tagBool:
		return r.ReadBool()
	case tagInt64:
		return r.ReadI64()
	case tagInt:
		v, err := r.ReadI64()
		return int(v), err
	case tagFloat64:
		return r.ReadF64()
	case tagComplex128:
		return r.ReadComplex128()
	case tagString:
		return r.ReadString()
	case tagTime:
		ns, err := r.ReadI64()
		if err != nil {
			return nil, err
		}
		return time.Unix(0, ns).UTC(), nil
	}
	return nil, fmt.Errorf("%w: object tag %d", ErrCorrupt, tag)
}
