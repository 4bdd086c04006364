package data

import (
	"database/sql"
	"gotest.tools/assert"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func Test_LoadSQLite(t *testing.T) {
	dir, err := ioutil.TempDir("", "ecnet-sqlite")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "db.sqlite")

	db, err := sql.Open("sqlite3", path)
	assert.NilError(t, err)
	_, err = db.Exec(`create table compounds (
		dataid text, assignment text, mw real, bp real, target real)`)
	assert.NilError(t, err)
	_, err = db.Exec(`insert into compounds values
		('0001', 'L', 16.04, -161.5, 12.5),
		('0002', 'V', 30.07, -88.6, 20.1),
		('0003', 'T', 44.1, -42.1, 27.9)`)
	assert.NilError(t, err)
	assert.NilError(t, db.Close())

	ds, err := LoadSQLite(path, `select * from compounds`,
		[]string{"mw", "bp"}, []string{"target"})
	assert.NilError(t, err)
	assert.Assert(t, ds.Len() == 3)
	assert.DeepEqual(t, ds.InputNames, []string{"mw", "bp"})
	assert.Assert(t, ds.Rows[0].ID == "0001")
	assert.Assert(t, ds.Rows[1].Assignment == Validation)
	assert.Assert(t, ds.Rows[2].Inputs[0] == 44.1)
	assert.Assert(t, ds.Rows[2].Outputs[0] == 27.9)

	_, err = LoadSQLite(path, `select * from compounds`,
		[]string{"nope"}, []string{"target"})
	assert.Assert(t, err != nil)
}
