package synth

import "testing"

func TestTableLoads_DependencyOrder(t *testing.T) {
	ds := Generate(Config{Patients: 30})
	loads := tableLoads(ds)

	if len(loads) != 13 {
		t.Fatalf("got %d tables, want 13", len(loads))
	}
	position := make(map[string]int, len(loads))
	for i, l := range loads {
		position[l.table] = i
	}
	// Referenced tables must be loaded before the tables that point at them.
	before := [][2]string{
		{"dim_program", "dim_subprogram"},
		{"dim_site", "dim_lha"},
		{"dim_subprogram", "staffing_factors"},
		{"dim_lha", "patients"},
		{"patients", "ed_encounters"},
		{"patients", "ip_stays"},
		{"dim_subprogram", "ip_stays"},
	}
	for _, pair := range before {
		if position[pair[0]] >= position[pair[1]] {
			t.Errorf("%s must load before %s", pair[0], pair[1])
		}
	}
}

func TestTableLoads_RowsMatchColumns(t *testing.T) {
	ds := Generate(Config{Patients: 30})
	for _, l := range tableLoads(ds) {
		if len(l.rows) == 0 {
			t.Errorf("table %s has no rows", l.table)
		}
		for i, row := range l.rows {
			if len(row) != len(l.columns) {
				t.Fatalf("table %s row %d has %d values for %d columns", l.table, i, len(row), len(l.columns))
			}
		}
	}
}

func TestTableLoads_SubprogramIDsRepeatAcrossPrograms(t *testing.T) {
	ds := Generate(Config{Patients: 30})
	var rows [][]interface{}
	for _, l := range tableLoads(ds) {
		if l.table == "dim_subprogram" {
			rows = l.rows
		}
	}
	if len(rows) != 18 {
		t.Fatalf("got %d subprogram rows, want 18", len(rows))
	}

	// subprogram_id alone repeats (1..3 under each program); only the
	// (program_id, subprogram_id) pair is unique. The schema keys on the
	// pair for exactly this reason.
	pairs := make(map[[2]int]bool)
	bare := make(map[int]bool)
	for _, row := range rows {
		pair := [2]int{row[0].(int), row[1].(int)}
		if pairs[pair] {
			t.Fatalf("duplicate (program_id, subprogram_id) pair %v", pair)
		}
		pairs[pair] = true
		bare[pair[1]] = true
	}
	if len(bare) >= len(rows) {
		t.Error("expected subprogram_id values to repeat across programs")
	}
}

func TestTableLoads_NullableColumns(t *testing.T) {
	ds := Generate(Config{Patients: 30})
	for _, l := range tableLoads(ds) {
		switch l.table {
		case "seasonality_monthly":
			// The first twelve rows are the global tier: both keys NULL.
			for i := 0; i < 12; i++ {
				if l.rows[i][0].(*int) != nil || l.rows[i][1].(*int) != nil {
					t.Errorf("global seasonality row %d has non-nil keys", i)
				}
			}
		case "staffing_factors":
			for i, row := range l.rows {
				if row[1].(*int) != nil {
					t.Errorf("staffing row %d has a subprogram_id, want program-level NULL", i)
				}
			}
		}
	}
}
