// internal/output/dist.go
package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"polycore-core/distance"
)

// WriteDistWide writes the square matrix with a name column, one row per
// sample. Unobservable pairs (NaN) render empty; the diagonal is 0.
func WriteDistWide(w io.Writer, ids []string, d mat.Symmetric) error {
	cw := csv.NewWriter(w)
	header := append([]string{"name"}, ids...)
	if err := cw.Write(header); err != nil {
		return err
	}
	n := d.SymmetricDim()
	for i := 0; i < n; i++ {
		row := make([]string, 0, n+1)
		row = append(row, ids[i])
		for j := 0; j < n; j++ {
			if i == j {
				row = append(row, fmtFloat6(0))
				continue
			}
			row = append(row, fmtFloat6(d.At(i, j)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDistLong writes the upper triangle pair per line with the raw
// integer difference and comparison units alongside the distance.
func WriteDistLong(w io.Writer, res *distance.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DistLongHeader); err != nil {
		return err
	}
	n := res.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			row := []string{
				res.IDs[i], res.IDs[j],
				fmtFloat6(res.Distance(i, j)),
				strconv.FormatInt(res.DiffUnits(i, j), 10),
				strconv.FormatInt(res.ComparedUnits(i, j), 10),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
