package regtree

import (
	"os"
	"path/filepath"
	"strings"

	errors "github.com/go-errors/errors"
)

type hiveSource struct {
	prefix   string
	path     string
	required bool
}

// Mapping of the well known hive files in a Windows
// %WINDIR%\system32\config directory to their registry key prefixes:
//
//	Registry Key       Filesystem Location (Win7)
//	-------------------------------------------------------------
//	HKLM\SAM           %WINDIR%\system32\config\SAM
//	HKLM\SECURITY      %WINDIR%\system32\config\SECURITY
//	HKLM\SOFTWARE      %WINDIR%\system32\config\software
//	HKLM\SYSTEM        %WINDIR%\system32\config\system
//	HKU\.DEFAULT       %WINDIR%\system32\config\default
//
// Only the system hive is mandatory - the others are skipped when
// missing or unparseable.
var configDirHives = []struct {
	filename string
	prefix   string
	required bool
}{
	{"system", "HKLM/SYSTEM", true},
	{"software", "HKLM/SOFTWARE", false},
	{"SAM", "HKLM/SAM", false},
	{"SECURITY", "HKLM/SECURITY", false},
	{"default", "HKU/.DEFAULT", false},
}

// hiveSources expands a mount source into the hive files to attach:
// a single file mounts at the root, a directory is treated as a
// system32/config layout. Filenames are matched case insensitively
// since hives extracted from an image may arrive in either case.
func hiveSources(source string) ([]hiveSource, error) {
	st, err := os.Stat(source)
	if err != nil {
		return nil, err
	}

	if !st.IsDir() {
		return []hiveSource{
			{prefix: "", path: source, required: true},
		}, nil
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, err
	}

	filenames := make(map[string]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			filenames[strings.ToLower(entry.Name())] = entry.Name()
		}
	}

	var result []hiveSource
	for _, spec := range configDirHives {
		actual, pres := filenames[strings.ToLower(spec.filename)]
		if !pres {
			if spec.required {
				return nil, errors.Errorf(
					"directory %v does not look like a registry "+
						"config directory: no %v hive",
					source, spec.filename)
			}
			continue
		}

		result = append(result, hiveSource{
			prefix:   spec.prefix,
			path:     filepath.Join(source, actual),
			required: spec.required,
		})
	}

	return result, nil
}
