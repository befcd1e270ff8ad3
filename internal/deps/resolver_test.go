package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"clip-automator/internal/storage"
)

func notFoundErr(command string) error {
	return &exec.Error{Name: command, Err: exec.ErrNotFound}
}

func TestPathResolverResolvePrefersConfiguredPath(t *testing.T) {
	binPath := filepath.Join(t.TempDir(), "ffmpeg-custom")
	if err := os.WriteFile(binPath, []byte("ffmpeg"), 0o755); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}

	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		return "", notFoundErr(file)
	}

	state := resolver.Resolve(DependencySpec{
		Name:           "ffmpeg",
		Command:        "ffmpeg",
		ConfiguredPath: binPath,
	})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.Source != DependencySourceConfigured {
		t.Fatalf("state.Source = %q, want %q", state.Source, DependencySourceConfigured)
	}
	if state.ResolvedPath != binPath {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, binPath)
	}
}

func TestPathResolverResolveFallsBackToLookPath(t *testing.T) {
	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		if file != "yt-dlp" {
			t.Fatalf("LookPath() received %q, want %q", file, "yt-dlp")
		}
		return "/mock/bin/yt-dlp", nil
	}

	state := resolver.Resolve(DependencySpec{Name: "yt-dlp", Command: "yt-dlp"})

	if state.Status != DependencyStatusOK {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusOK)
	}
	if state.Source != DependencySourceLookPath {
		t.Fatalf("state.Source = %q, want %q", state.Source, DependencySourceLookPath)
	}
	if state.ResolvedPath != "/mock/bin/yt-dlp" {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, "/mock/bin/yt-dlp")
	}
}

func TestPathResolverResolveReportsMissingWhenNotFound(t *testing.T) {
	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		return "", notFoundErr(file)
	}

	state := resolver.Resolve(DependencySpec{Name: "ffmpeg", Command: "ffmpeg"})

	if state.Status != DependencyStatusMissing {
		t.Fatalf("state.Status = %q, want %q", state.Status, DependencyStatusMissing)
	}
}

func TestPathResolverCommandValuedConfigUsesLookPath(t *testing.T) {
	// A configured path equal to the bare command means "unconfigured".
	resolver := NewPathResolver()
	resolver.LookPath = func(file string) (string, error) {
		return "/usr/bin/" + file, nil
	}

	state := resolver.Resolve(DependencySpec{
		Name:           "ffmpeg",
		Command:        "ffmpeg",
		ConfiguredPath: "ffmpeg",
	})

	if state.Source != DependencySourceLookPath {
		t.Fatalf("state.Source = %q, want %q", state.Source, DependencySourceLookPath)
	}
	if state.ResolvedPath != "/usr/bin/ffmpeg" {
		t.Fatalf("state.ResolvedPath = %q, want %q", state.ResolvedPath, "/usr/bin/ffmpeg")
	}
}

func TestBuildDependencyInventoryCoversPipelineTools(t *testing.T) {
	specs := BuildDependencyInventory("/opt/ffmpeg", "")

	ids := make([]string, 0, len(specs))
	for _, spec := range specs {
		ids = append(ids, spec.ID)
		if spec.Tier != DependencyTierMust {
			t.Fatalf("spec %q tier = %q, want %q", spec.ID, spec.Tier, DependencyTierMust)
		}
	}

	want := []string{"ffmpeg", "ffprobe", "yt-dlp"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Fatalf("inventory ids = %v, want %v", ids, want)
	}
	if specs[0].ConfiguredPath != "/opt/ffmpeg" {
		t.Fatalf("ffmpeg configured path = %q, want %q", specs[0].ConfiguredPath, "/opt/ffmpeg")
	}
}

func TestApplyResolvedPaths(t *testing.T) {
	originalFfmpeg := storage.FfmpegPath
	originalFfprobe := storage.FfprobePath
	originalYtdlp := storage.YtdlpPath
	t.Cleanup(func() {
		storage.FfmpegPath = originalFfmpeg
		storage.FfprobePath = originalFfprobe
		storage.YtdlpPath = originalYtdlp
	})

	ApplyResolvedPaths([]DependencyState{
		{DependencySpec: DependencySpec{ID: "ffmpeg"}, Status: DependencyStatusOK, ResolvedPath: "/opt/bin/ffmpeg"},
		{DependencySpec: DependencySpec{ID: "ffprobe"}, Status: DependencyStatusMissing, ResolvedPath: "/opt/bin/ffprobe"},
		{DependencySpec: DependencySpec{ID: "yt-dlp"}, Status: DependencyStatusOK, ResolvedPath: "/opt/bin/yt-dlp"},
	})

	if storage.FfmpegPath != "/opt/bin/ffmpeg" {
		t.Fatalf("storage.FfmpegPath = %q, want %q", storage.FfmpegPath, "/opt/bin/ffmpeg")
	}
	if storage.FfprobePath != originalFfprobe {
		t.Fatalf("storage.FfprobePath = %q, want unchanged %q", storage.FfprobePath, originalFfprobe)
	}
	if storage.YtdlpPath != "/opt/bin/yt-dlp" {
		t.Fatalf("storage.YtdlpPath = %q, want %q", storage.YtdlpPath, "/opt/bin/yt-dlp")
	}
}

func TestCheckMustDependencies(t *testing.T) {
	ok := []DependencyState{
		{DependencySpec: DependencySpec{Name: "ffmpeg", Tier: DependencyTierMust}, Status: DependencyStatusOK},
	}
	if err := CheckMustDependencies(ok); err != nil {
		t.Fatalf("CheckMustDependencies() = %v, want nil", err)
	}

	missing := []DependencyState{
		{DependencySpec: DependencySpec{Name: "ffmpeg", Tier: DependencyTierMust}, Status: DependencyStatusMissing},
		{DependencySpec: DependencySpec{Name: "yt-dlp", Tier: DependencyTierMust}, Status: DependencyStatusError},
	}
	err := CheckMustDependencies(missing)
	if err == nil {
		t.Fatal("CheckMustDependencies() = nil, want error")
	}
	if !strings.Contains(err.Error(), "ffmpeg") || !strings.Contains(err.Error(), "yt-dlp") {
		t.Fatalf("error %q does not name missing binaries", err.Error())
	}
}

func TestFormatDependencyReport(t *testing.T) {
	report := FormatDependencyReport([]DependencyState{
		{
			DependencySpec: DependencySpec{Name: "ffmpeg", Tier: DependencyTierMust, Hint: "install it"},
			Status:         DependencyStatusMissing,
			Source:         DependencySourceLookPath,
			Error:          "exec: \"ffmpeg\": executable file not found in $PATH",
		},
	})

	for _, fragment := range []string{"ffmpeg", "MUST", "missing", "install it"} {
		if !strings.Contains(report, fragment) {
			t.Fatalf("report %q missing fragment %q", report, fragment)
		}
	}
}
