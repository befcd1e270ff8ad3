package appdirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	PortableEnv = "CLIPAUTOMATOR_PORTABLE"

	appName        = "ClipAutomator"
	configFileName = "config.toml"
)

type Paths struct {
	Portable   bool
	ConfigDir  string
	ConfigFile string
	LogDir     string
	OutputDir  string
	CacheDir   string
}

type resolveDeps struct {
	goos          string
	getenv        func(string) string
	executable    func() (string, error)
	userConfigDir func() (string, error)
	userCacheDir  func() (string, error)
}

func Resolve() (Paths, error) {
	return resolve(resolveDeps{
		goos:          runtime.GOOS,
		getenv:        os.Getenv,
		executable:    os.Executable,
		userConfigDir: os.UserConfigDir,
		userCacheDir:  os.UserCacheDir,
	})
}

func resolve(rawDeps resolveDeps) (Paths, error) {
	deps := withDefaults(rawDeps)
	if isPortableEnabled(deps.getenv(PortableEnv)) {
		return resolvePortable(deps)
	}
	if deps.goos == "windows" {
		return resolveWindows(deps)
	}
	return defaultNonWindowsPaths(), nil
}

func withDefaults(deps resolveDeps) resolveDeps {
	if deps.goos == "" {
		deps.goos = runtime.GOOS
	}
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}
	if deps.executable == nil {
		deps.executable = os.Executable
	}
	if deps.userConfigDir == nil {
		deps.userConfigDir = os.UserConfigDir
	}
	if deps.userCacheDir == nil {
		deps.userCacheDir = os.UserCacheDir
	}
	return deps
}

// layoutUnder builds the standard directory layout: config lives under
// configDir, everything else under dataDir.
func layoutUnder(configDir, dataDir string) Paths {
	return Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, configFileName),
		LogDir:     filepath.Join(dataDir, "logs"),
		OutputDir:  filepath.Join(dataDir, "output"),
		CacheDir:   filepath.Join(dataDir, "cache"),
	}
}

func resolvePortable(deps resolveDeps) (Paths, error) {
	executablePath, err := deps.executable()
	if err != nil {
		return Paths{}, err
	}

	dataDir := filepath.Join(filepath.Dir(executablePath), "data")
	paths := layoutUnder(filepath.Join(dataDir, "config"), dataDir)
	paths.Portable = true
	return paths, nil
}

func resolveWindows(deps resolveDeps) (Paths, error) {
	configRoot, err := nonEmptyDir(deps.userConfigDir, "user config dir")
	if err != nil {
		return Paths{}, err
	}
	cacheRoot, err := nonEmptyDir(deps.userCacheDir, "user cache dir")
	if err != nil {
		return Paths{}, err
	}
	return layoutUnder(filepath.Join(configRoot, appName), filepath.Join(cacheRoot, appName)), nil
}

func nonEmptyDir(lookup func() (string, error), label string) (string, error) {
	dir, err := lookup()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(dir) == "" {
		return "", errors.New(label + " is empty")
	}
	return dir, nil
}

// defaultNonWindowsPaths keeps everything relative to the working
// directory, which suits a daemon started from a service unit.
func defaultNonWindowsPaths() Paths {
	return Paths{
		ConfigDir:  "config",
		ConfigFile: filepath.Join("config", configFileName),
		LogDir:     ".",
		OutputDir:  "output",
		CacheDir:   "cache",
	}
}

func isPortableEnabled(value string) bool {
	normalized := strings.TrimSpace(strings.ToLower(value))
	return normalized == "1" || normalized == "true"
}
