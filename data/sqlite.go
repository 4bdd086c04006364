package data

import (
	"database/sql"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"

	_ "github.com/mattn/go-sqlite3"
)

/*
LoadSQLite runs a query against a SQLite database file and builds a dataset
from its result. Columns named in inputs and targets become the dataset's
input and output columns; optional `dataid` and `assignment` result columns
map to row IDs and explicit subset labels.
*/
func LoadSQLite(path, query string, inputs, targets []string) (Dataset, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return Dataset{}, zorros.Trace(err)
	}
	defer db.Close()
	return LoadSQL(db, query, inputs, targets)
}

/*
LoadSQL builds a dataset from an arbitrary SQL query, see LoadSQLite
*/
func LoadSQL(db *sql.DB, query string, inputs, targets []string) (Dataset, error) {
	rows, err := db.Query(query)
	if err != nil {
		return Dataset{}, zorros.Trace(err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return Dataset{}, zorros.Trace(err)
	}
	at := func(name string) int {
		for j, c := range cols {
			if c == name {
				return j
			}
		}
		return -1
	}
	ix := make([]int, 0, len(inputs))
	for _, c := range inputs {
		j := at(c)
		if j < 0 {
			return Dataset{}, xerrors.Errorf("query result has no column `%v`", c)
		}
		ix = append(ix, j)
	}
	tx := make([]int, 0, len(targets))
	for _, c := range targets {
		j := at(c)
		if j < 0 {
			return Dataset{}, xerrors.Errorf("query result has no column `%v`", c)
		}
		tx = append(tx, j)
	}
	idCol, asgCol := at("dataid"), at("assignment")
	ds := Dataset{
		InputNames:  append([]string{}, inputs...),
		OutputNames: append([]string{}, targets...),
	}
	vals := make([]interface{}, len(cols))
	for j := range vals {
		vals[j] = new(interface{})
	}
	for rows.Next() {
		if err = rows.Scan(vals...); err != nil {
			return Dataset{}, zorros.Trace(err)
		}
		row := Row{Inputs: make([]float64, len(ix)), Outputs: make([]float64, len(tx))}
		for k, j := range ix {
			if row.Inputs[k], err = sqlFloat(cols[j], *vals[j].(*interface{})); err != nil {
				return Dataset{}, err
			}
		}
		for k, j := range tx {
			if row.Outputs[k], err = sqlFloat(cols[j], *vals[j].(*interface{})); err != nil {
				return Dataset{}, err
			}
		}
		if idCol >= 0 {
			if s, ok := (*vals[idCol].(*interface{})).(string); ok {
				row.ID = s
			}
		}
		if asgCol >= 0 {
			s, _ := (*vals[asgCol].(*interface{})).(string)
			if row.Assignment, err = parseLabel(s); err != nil {
				return Dataset{}, err
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err = rows.Err(); err != nil {
		return Dataset{}, zorros.Trace(err)
	}
	return ds, nil
}

func sqlFloat(col string, v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	}
	return 0, xerrors.Errorf("column `%v` holds non-numeric value %v", col, v)
}
