package pointset

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
)

// ReadArrowIPC reads a batch from an Arrow IPC stream. The schema must
// carry an "id" column of type utf8 and a "point" column of type
// fixed_size_list<float32>; the list width is the point
// dimensionality.
func ReadArrowIPC(r io.Reader) (*Batch, error) {
	rdr, err := ipc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening arrow stream: %w", err)
	}
	defer rdr.Release()

	schema := rdr.Schema()
	idIdx, err := singleFieldIndex(schema, "id")
	if err != nil {
		return nil, err
	}
	ptIdx, err := singleFieldIndex(schema, "point")
	if err != nil {
		return nil, err
	}

	batch := &Batch{}
	for rdr.Next() {
		rec := rdr.Record()

		ids, ok := rec.Column(idIdx).(*array.String)
		if !ok {
			return nil, fmt.Errorf("column %q has type %s, want utf8", "id", rec.Column(idIdx).DataType())
		}
		lists, ok := rec.Column(ptIdx).(*array.FixedSizeList)
		if !ok {
			return nil, fmt.Errorf("column %q has type %s, want fixed_size_list<float32>", "point", rec.Column(ptIdx).DataType())
		}
		values, ok := lists.ListValues().(*array.Float32)
		if !ok {
			return nil, fmt.Errorf("column %q holds %s values, want float32", "point", lists.ListValues().DataType())
		}
		width := int(lists.DataType().(*arrow.FixedSizeListType).Len())

		for i := 0; i < int(rec.NumRows()); i++ {
			if ids.IsNull(i) || lists.IsNull(i) {
				return nil, fmt.Errorf("row %d: null id or point", batch.Len())
			}
			point := make([]float32, width)
			for j := 0; j < width; j++ {
				point[j] = values.Value(i*width + j)
			}
			batch.append(ids.Value(i), point)
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("reading arrow stream: %w", err)
	}
	return batch, nil
}

func singleFieldIndex(schema *arrow.Schema, name string) (int, error) {
	indices := schema.FieldIndices(name)
	if len(indices) != 1 {
		return 0, fmt.Errorf("schema needs exactly one %q column, found %d", name, len(indices))
	}
	return indices[0], nil
}
