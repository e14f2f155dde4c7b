package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/testutil"
)

// withoutNoColorEnv unsets NO_COLOR for the duration of the test so
// ui.InitTheme's own environment check does not interfere with the cases
// below that rely on it defaulting to colored output.
func withoutNoColorEnv(t *testing.T) {
	t.Helper()
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		os.Unsetenv("NO_COLOR")
		t.Cleanup(func() { os.Setenv("NO_COLOR", v) })
	}
}

func TestRun_ProgrammerError_ColoredErrorOutput(t *testing.T) {
	withoutNoColorEnv(t)

	var out, errOut bytes.Buffer
	code := run([]string{"-problem=sd", "-n=-5", "-quiet"}, &out, &errOut)

	if code != apperr.ExitErrorGeneric {
		t.Fatalf("code = %d, want %d", code, apperr.ExitErrorGeneric)
	}

	raw := errOut.String()
	if !strings.Contains(raw, "\x1b[") {
		t.Fatalf("expected ANSI-colored error output, got %q", raw)
	}

	got := testutil.StripAnsiCodes(raw)
	want := "sd: parameter \"n\" must be positive, got -5\n"
	if got != want {
		t.Errorf("stripped error output = %q, want %q", got, want)
	}
}

func TestRun_NoColorFlag_PlainErrorOutput(t *testing.T) {
	withoutNoColorEnv(t)

	var out, errOut bytes.Buffer
	code := run([]string{"-problem=sd", "-n=-5", "-quiet", "-no-color"}, &out, &errOut)

	if code != apperr.ExitErrorGeneric {
		t.Fatalf("code = %d, want %d", code, apperr.ExitErrorGeneric)
	}

	raw := errOut.String()
	if strings.Contains(raw, "\x1b[") {
		t.Fatalf("expected no ANSI codes with -no-color, got %q", raw)
	}
	want := "sd: parameter \"n\" must be positive, got -5\n"
	if raw != want {
		t.Errorf("error output = %q, want %q", raw, want)
	}
}

func TestRun_UnrecognizedComplexityType_ColoredConfigError(t *testing.T) {
	withoutNoColorEnv(t)

	var out, errOut bytes.Buffer
	code := run([]string{"-problem=sd", "-complexity-type=bogus", "-quiet"}, &out, &errOut)

	if code != apperr.ExitErrorConfig {
		t.Fatalf("code = %d, want %d", code, apperr.ExitErrorConfig)
	}

	got := testutil.StripAnsiCodes(errOut.String())
	want := "unrecognized complexity type: \"bogus\"\n"
	if got != want {
		t.Errorf("stripped error output = %q, want %q", got, want)
	}
}

func TestRun_JSONOutput_Succeeds(t *testing.T) {
	withoutNoColorEnv(t)

	var out, errOut bytes.Buffer
	code := run([]string{"-problem=sd", "-n=20", "-k=10", "-w=4", "-quiet", "-json"}, &out, &errOut)

	if code != apperr.ExitSuccess {
		t.Fatalf("code = %d, want %d, stderr: %s", code, apperr.ExitSuccess, errOut.String())
	}
	if !strings.Contains(out.String(), "\"problem\"") {
		t.Errorf("expected JSON report in stdout, got %q", out.String())
	}
}

func TestRun_Metrics_DumpsRegistryToStderr(t *testing.T) {
	withoutNoColorEnv(t)

	var out, errOut bytes.Buffer
	code := run([]string{"-problem=sd", "-n=20", "-k=10", "-w=4", "-quiet", "-metrics"}, &out, &errOut)

	if code != apperr.ExitSuccess {
		t.Fatalf("code = %d, want %d, stderr: %s", code, apperr.ExitSuccess, errOut.String())
	}
	if !strings.Contains(errOut.String(), "estimator_samples_evaluated_total") {
		t.Errorf("expected dumped Prometheus registry in stderr, got %q", errOut.String())
	}
}
