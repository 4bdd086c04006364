package data

import (
	"encoding/csv"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"io"
	"os"
	"strconv"
	"strings"
)

// column kinds of the ECNet database layout
const (
	kindDataID     = "DATAID"
	kindAssignment = "ASSIGNMENT"
	kindString     = "STRING"
	kindTarget     = "TARGET"
	kindInput      = "INPUT"
)

/*
LoadCSV reads an ECNet-formatted database file. Files ending in `.xz` are
decompressed transparently.
*/
func LoadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, zorros.Trace(err)
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if r, err = xz.NewReader(f); err != nil {
			return Dataset{}, zorros.Wrapf(err, "bad xz stream `%v`: %v", path, err.Error())
		}
	}
	return ReadCSV(r)
}

/*
ReadCSV parses an ECNet-formatted database: a type row tagging every column
as DATAID, ASSIGNMENT, STRING, TARGET or INPUT, a title row naming them,
then one row per record. STRING columns are skipped; empty ASSIGNMENT
values leave the row Unassigned.
*/
func ReadCSV(r io.Reader) (Dataset, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Dataset{}, zorros.Trace(err)
	}
	if len(rows) < 2 {
		return Dataset{}, xerrors.New("database needs a type row and a title row")
	}
	kinds, titles := rows[0], rows[1]
	if len(kinds) != len(titles) {
		return Dataset{}, xerrors.Errorf("type row has %d columns, title row %d", len(kinds), len(titles))
	}
	ds := Dataset{}
	idCol, asgCol := -1, -1
	var inputCols, targetCols []int
	for j, k := range kinds {
		switch strings.ToUpper(strings.TrimSpace(k)) {
		case kindDataID:
			idCol = j
		case kindAssignment:
			asgCol = j
		case kindString:
			// descriptive only
		case kindTarget:
			targetCols = append(targetCols, j)
			ds.OutputNames = append(ds.OutputNames, titles[j])
		case kindInput:
			inputCols = append(inputCols, j)
			ds.InputNames = append(ds.InputNames, titles[j])
		default:
			return Dataset{}, xerrors.Errorf("unknown column type `%v` for column `%v`", k, titles[j])
		}
	}
	for i, rec := range rows[2:] {
		if len(rec) != len(kinds) {
			return Dataset{}, xerrors.Errorf("row %d has %d columns, want %d", i+1, len(rec), len(kinds))
		}
		row := Row{}
		if idCol >= 0 {
			row.ID = rec[idCol]
		}
		if asgCol >= 0 {
			if row.Assignment, err = parseLabel(rec[asgCol]); err != nil {
				return Dataset{}, xerrors.Errorf("row %d: %w", i+1, err)
			}
		}
		if row.Inputs, err = parseFloats(rec, inputCols); err != nil {
			return Dataset{}, xerrors.Errorf("row %d: %w", i+1, err)
		}
		if row.Outputs, err = parseFloats(rec, targetCols); err != nil {
			return Dataset{}, xerrors.Errorf("row %d: %w", i+1, err)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func parseLabel(s string) (Label, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return Learn, nil
	case "V":
		return Validation, nil
	case "T":
		return Test, nil
	case "":
		return Unassigned, nil
	}
	return Unassigned, xerrors.Errorf("assignment `%v`: %w", s, ErrInvalidLabel)
}

func parseFloats(rec []string, cols []int) ([]float64, error) {
	v := make([]float64, len(cols))
	for i, j := range cols {
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[j]), 64)
		if err != nil {
			return nil, xerrors.Errorf("bad numeric value `%v`", rec[j])
		}
		v[i] = x
	}
	return v, nil
}
