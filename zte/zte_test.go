package zte

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnm-bi/autoreport/table"
	"github.com/vnm-bi/autoreport/utils"
)

func writeCSV(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func write3GInputs(t *testing.T, dir string) {
	t.Helper()
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_Traffic_EMS1_WD_20240101.csv"),
		"ZTE UMTS Traffic Export",
		"Cell Name,AMR Traffic (Erl),Total Data Traffic (MB)",
		"U106038A10M,2.5,120",
		"U106038A20M,1.0,0", // zero data, cleaned after join
	)
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_Traffic_EMS2_WD_20240101.csv"),
		"ZTE UMTS Traffic Export",
		"Cell Name,AMR Traffic (Erl),Total Data Traffic (MB)",
		"U200001C10M,4.0,300",
	)
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_User_TP_EMS1_BH_20240101.csv"),
		"ZTE UMTS User Throughput Export",
		"Cell Name,Average HSDPA Users,User DL Throughput (kbps)",
		"U106038A10M,12,2100",
		"U106038A20M,4,800",
		"U777777X10M,9,100", // absent from traffic, dropped by inner join
	)
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_User_TP_EMS2_BH_20240101.csv"),
		"ZTE UMTS User Throughput Export",
		"Cell Name,Average HSDPA Users,User DL Throughput (kbps)",
		"U200001C10M,7,1500",
	)
}

func TestProcess3G(t *testing.T) {
	dir := t.TempDir()
	write3GInputs(t, dir)

	p := New(Spec3G(), utils.NewLogger())
	cells, err := p.Process(dir)
	require.NoError(t, err)

	byID := map[string]table.CellRecord{}
	for _, c := range cells {
		byID[c.CellID] = c
	}
	require.Len(t, cells, 2)
	assert.Equal(t, table.CellRecord{CellID: "U106038A10M", User: 12, Speed: 2100, Voice: 2.5, Data: 120}, byID["U106038A10M"])
	assert.Equal(t, table.CellRecord{CellID: "U200001C10M", User: 7, Speed: 1500, Voice: 4, Data: 300}, byID["U200001C10M"])
}

func TestConcatKeepsAllPartitionRows(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_Traffic_EMS1_WD_x.csv"),
		"banner",
		"Cell Name,AMR Traffic (Erl),Total Data Traffic (MB)",
		"A,1,1",
		"B,1,1",
	)
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_Traffic_EMS2_WD_x.csv"),
		"banner",
		"Cell Name,AMR Traffic (Erl),Total Data Traffic (MB)",
		"C,1,1",
		"D,1,1",
	)

	spec := Spec3G()
	recs, err := loadConcat(dir, spec.TrafficPatterns, spec.CellCol, spec.VoiceCol, spec.DataCol)
	require.NoError(t, err)
	assert.Len(t, recs, 4, "EMS partitions concatenate, nothing collapses")
}

func TestProcessMissingPartitionIsFatal(t *testing.T) {
	dir := t.TempDir()
	// Only EMS1 traffic present; EMS2 absent.
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_Traffic_EMS1_WD_x.csv"),
		"banner",
		"Cell Name,AMR Traffic (Erl),Total Data Traffic (MB)",
		"A,1,1",
	)

	p := New(Spec3G(), utils.NewLogger())
	_, err := p.Process(dir)
	var miss *table.MissingInputError
	require.ErrorAs(t, err, &miss)
	assert.Contains(t, miss.File, "EMS2")
}

func TestProcessSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	write3GInputs(t, dir)
	// Overwrite EMS1 traffic with a renamed column.
	writeCSV(t, filepath.Join(dir, "Automate_3G_ZTE_Traffic_EMS1_WD_20240101.csv"),
		"banner",
		"Cell Name,Voice Erlang,Total Data Traffic (MB)",
		"A,1,1",
	)

	p := New(Spec3G(), utils.NewLogger())
	_, err := p.Process(dir)
	var mismatch *table.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"AMR Traffic (Erl)"}, mismatch.Missing)
}

func TestSpec4GColumns(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "Automate_4G_ZTE_Traffic_EMS1_WD_1.csv"),
		"banner",
		"Cell Name,[LTE]Average Number of QCI1(Traffic)(Erl),Data(MB)",
		"L106038A1,0.8,950",
	)
	writeCSV(t, filepath.Join(dir, "Automate_4G_ZTE_Traffic_EMS2_WD_1.csv"),
		"banner",
		"Cell Name,[LTE]Average Number of QCI1(Traffic)(Erl),Data(MB)",
		"L200001B1,0.2,40",
	)
	writeCSV(t, filepath.Join(dir, "Automate_4G_ZTE_User_TP_EMS1_BH_1.csv"),
		"banner",
		"Cell Name,Average DL Active User Number,DL_THP_PER_USER(kbps)",
		"L106038A1,31,5400",
	)
	writeCSV(t, filepath.Join(dir, "Automate_4G_ZTE_User_TP_EMS2_BH_1.csv"),
		"banner",
		"Cell Name,Average DL Active User Number,DL_THP_PER_USER(kbps)",
		"L200001B1,3,7100",
	)

	p := New(Spec4G(), utils.NewLogger())
	assert.Equal(t, "4G-ZTE", p.Name())
	cells, err := p.Process(dir)
	require.NoError(t, err)
	require.Len(t, cells, 2)
}
