package i18n

import (
	"strings"
	"testing"
)

func TestT_English(t *testing.T) {
	Init("en")
	got := T("install.success", "biominer/rnaseq:latest")
	if got != "Installed biominer/rnaseq:latest successfully." {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestT_Chinese(t *testing.T) {
	Init("zh")
	got := T("apps.none")
	if got != "没有已安装的应用。" {
		t.Fatalf("unexpected translation: %q", got)
	}
	SetLang("en")
}

func TestT_UnknownID(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected fallback to message ID, got %q", got)
	}
}

func TestT_UninitializedDefaultsToEnglish(t *testing.T) {
	localizer = nil
	got := T("uninstall.not_found", "x/y:z")
	if !strings.Contains(got, "x/y:z") {
		t.Fatalf("expected interpolated app name, got %q", got)
	}
}
