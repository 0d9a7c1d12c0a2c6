package mcpserver

import (
	"reflect"
	"testing"
)

func TestBuildAddArgs(t *testing.T) {
	args := map[string]interface{}{
		"game": "wordle",
		"text": "Wordle 1,234 3/6",
	}

	got := buildAddArgs(args)
	want := []string{"add", "wordle", "Wordle 1,234 3/6", "--json", "--min"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildAddArgs() = %v, want %v", got, want)
	}
}

func TestBuildListArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want []string
	}{
		{
			name: "basic list",
			args: map[string]interface{}{"game": "wordle"},
			want: []string{"list", "wordle", "--json", "--min"},
		},
		{
			name: "with parsed",
			args: map[string]interface{}{"game": "wordle", "parsed": true},
			want: []string{"list", "wordle", "--parsed", "--json", "--min"},
		},
		{
			name: "with data path",
			args: map[string]interface{}{"game": "wordle", "data": "/tmp/results.db"},
			want: []string{"list", "wordle", "--data", "/tmp/results.db", "--json", "--min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildListArgs(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildListArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildUpdateArgs(t *testing.T) {
	args := map[string]interface{}{
		"game":     "wordle",
		"date":     "2024-06-10",
		"text":     "Wordle 1,234 5/6",
		"new_date": "2024-06-11",
	}

	got := buildUpdateArgs(args)
	want := []string{"update", "wordle", "2024-06-10", "Wordle 1,234 5/6", "--new-date", "2024-06-11", "--json", "--min"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildUpdateArgs() = %v, want %v", got, want)
	}
}

func TestBuildDeleteArgs(t *testing.T) {
	args := map[string]interface{}{
		"game": "wordle",
		"date": "2024-06-10",
	}

	got := buildDeleteArgs(args)
	want := []string{"delete", "wordle", "2024-06-10", "--json", "--min"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildDeleteArgs() = %v, want %v", got, want)
	}
}

func TestBuildAverageArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want []string
	}{
		{
			name: "game only",
			args: map[string]interface{}{"game": "wordle"},
			want: []string{"average", "wordle", "--json", "--min"},
		},
		{
			name: "with field and days",
			args: map[string]interface{}{"game": "wordle", "field": "Attempts", "days": float64(14)},
			want: []string{"average", "wordle", "--field", "Attempts", "--days", "14", "--json", "--min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildAverageArgs(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildAverageArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildTodayArgs(t *testing.T) {
	got := buildTodayArgs(map[string]interface{}{"all": true})
	want := []string{"today", "--all", "--json", "--min"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildTodayArgs() = %v, want %v", got, want)
	}
}

func TestBuildGamesArgs(t *testing.T) {
	got := buildGamesArgs(map[string]interface{}{})
	want := []string{"games", "list", "--json", "--min"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildGamesArgs() = %v, want %v", got, want)
	}
}

func TestBuildExportImportArgs(t *testing.T) {
	gotExport := buildExportArgs(map[string]interface{}{"output": "backup.json"})
	wantExport := []string{"export", "backup.json", "--json", "--min"}
	if !reflect.DeepEqual(gotExport, wantExport) {
		t.Errorf("buildExportArgs() = %v, want %v", gotExport, wantExport)
	}

	gotImport := buildImportArgs(map[string]interface{}{"input": "backup.json"})
	wantImport := []string{"import", "backup.json", "--json", "--min"}
	if !reflect.DeepEqual(gotImport, wantImport) {
		t.Errorf("buildImportArgs() = %v, want %v", gotImport, wantImport)
	}
}

func TestBuildArgsUnknownCommand(t *testing.T) {
	if _, err := buildArgs("bogus", map[string]interface{}{}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestCommonArgsCanDisableJSON(t *testing.T) {
	got := buildTodayArgs(map[string]interface{}{"json": false, "min": false})
	want := []string{"today"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildTodayArgs() = %v, want %v", got, want)
	}
}

func TestGetBool(t *testing.T) {
	args := map[string]interface{}{"set": true, "off": false, "wrong": "true"}

	if !getBool(args, "set") {
		t.Error("expected true for set key")
	}
	if getBool(args, "off") {
		t.Error("expected false for off key")
	}
	if getBool(args, "wrong") {
		t.Error("expected false for non-bool value")
	}
	if getBool(args, "missing") {
		t.Error("expected false for missing key")
	}
}

func TestGetBoolDefault(t *testing.T) {
	args := map[string]interface{}{"off": false}

	if getBoolDefault(args, "off", true) {
		t.Error("explicit false should override the default")
	}
	if !getBoolDefault(args, "missing", true) {
		t.Error("missing key should use the default")
	}
}

func TestGetInt(t *testing.T) {
	args := map[string]interface{}{
		"float": float64(30),
		"int":   7,
		"text":  "14",
	}

	if v, ok := getInt(args, "float"); !ok || v != 30 {
		t.Errorf("expected 30, got %d (ok=%v)", v, ok)
	}
	if v, ok := getInt(args, "int"); !ok || v != 7 {
		t.Errorf("expected 7, got %d (ok=%v)", v, ok)
	}
	if _, ok := getInt(args, "text"); ok {
		t.Error("string value should not convert")
	}
	if _, ok := getInt(args, "missing"); ok {
		t.Error("missing key should not convert")
	}
}
