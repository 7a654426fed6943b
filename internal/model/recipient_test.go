package model

import (
	"reflect"
	"testing"
)

func TestFormatsRoundTrip(t *testing.T) {
	formats := []string{FormatCSV, FormatPDF}
	joined := JoinFormats(formats)
	if joined != "csv,pdf" {
		t.Errorf("JoinFormats = %q", joined)
	}
	if got := SplitFormats(joined); !reflect.DeepEqual(got, formats) {
		t.Errorf("SplitFormats = %v", got)
	}
	if got := SplitFormats(""); got != nil {
		t.Errorf("SplitFormats(\"\") = %v, want nil", got)
	}
}

func TestWantsFormat(t *testing.T) {
	r := ReportRecipient{Formats: []string{FormatCSV}}
	if !r.WantsFormat(FormatCSV) {
		t.Error("csv not wanted")
	}
	if r.WantsFormat(FormatPDF) {
		t.Error("pdf wanted")
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"volunteer", "admin", "master_admin", "accounts", "trustee", "graphics"} {
		if _, ok := ParseRole(s); !ok {
			t.Errorf("ParseRole(%q) rejected", s)
		}
	}
	for _, s := range []string{"", "root", "ADMIN", "superuser"} {
		if _, ok := ParseRole(s); ok {
			t.Errorf("ParseRole(%q) accepted", s)
		}
	}
}
