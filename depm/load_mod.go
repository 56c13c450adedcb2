package depm

import (
	"fmt"
	"os"
	"path/filepath"

	"sablec/common"
	"sablec/report"

	"github.com/pelletier/go-toml"
)

// tomlModule represents a Sable module manifest as it is encoded in TOML.
type tomlModule struct {
	Name            string `toml:"name"`
	SableVersion    string `toml:"sable-version"`
	LayoutIterLimit int    `toml:"layout-iter-limit"`
}

// LoadModule loads and validates a module.  `abspath` is the absolute path to
// the module directory.  This function returns the deserialized module and a
// success boolean.
func LoadModule(abspath string) (*SableModule, bool) {
	// Read and unmarshal the manifest.
	buff, err := os.ReadFile(filepath.Join(abspath, common.SableModFileName))
	if err != nil {
		report.ReportStdError(
			fmt.Sprintf("<module at `%s`>", abspath),
			fmt.Errorf("unable to read module file: %w", err),
		)
		return nil, false
	}

	tomlMod := &tomlModule{}
	if err := toml.Unmarshal(buff, tomlMod); err != nil {
		report.ReportStdError(
			fmt.Sprintf("<module at `%s`>", abspath),
			fmt.Errorf("error parsing module file: %w", err),
		)
		return nil, false
	}

	mod := &SableModule{
		AbsPath:     abspath,
		ID:          GenerateIDFromPath(abspath),
		SubPackages: make(map[string]*SablePackage),
	}

	if !validateModule(mod, tomlMod) {
		return nil, false
	}

	return mod, true
}

// validateModule checks that the top level module manifest contents are valid
// and moves them onto the module.
func validateModule(mod *SableModule, tomlMod *tomlModule) bool {
	reprPath := fmt.Sprintf("<module at `%s`>", mod.AbsPath)

	if tomlMod.Name == "" {
		report.ReportStdError(reprPath, fmt.Errorf("missing module name"))
		return false
	}

	if !IsValidIdentifier(tomlMod.Name) {
		report.ReportStdError(reprPath, fmt.Errorf("module name must be a valid identifier"))
		return false
	}

	if tomlMod.SableVersion != common.SableVersion {
		report.ReportCompileWarning(
			mod.AbsPath,
			reprPath,
			nil,
			"version of module `%s` (v%s) does not match current sable version (v%s)",
			tomlMod.Name,
			tomlMod.SableVersion,
			common.SableVersion,
		)
	}

	if tomlMod.LayoutIterLimit < 0 {
		report.ReportStdError(reprPath, fmt.Errorf("layout-iter-limit must be positive"))
		return false
	} else if tomlMod.LayoutIterLimit == 0 {
		tomlMod.LayoutIterLimit = common.DefaultLayoutIterLimit
	}

	mod.Name = tomlMod.Name
	mod.LayoutIterLimit = tomlMod.LayoutIterLimit

	return true
}

/* -------------------------------------------------------------------------- */

// InitModuleFile writes a fresh module manifest into the directory at abspath.
func InitModuleFile(abspath, name string) error {
	if !IsValidIdentifier(name) {
		return fmt.Errorf("module name `%s` is not a valid identifier", name)
	}

	buff, err := toml.Marshal(tomlModule{
		Name:            name,
		SableVersion:    common.SableVersion,
		LayoutIterLimit: common.DefaultLayoutIterLimit,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(abspath, common.SableModFileName), buff, 0o644)
}
