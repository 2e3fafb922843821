package project

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const packagesConfigName = "packages.config"

type packagesConfigXML struct {
	XMLName  xml.Name `xml:"packages"`
	Packages []struct {
		ID string `xml:"id,attr"`
	} `xml:"package"`
}

type csprojXML struct {
	XMLName    xml.Name `xml:"Project"`
	ItemGroups []struct {
		PackageReferences []struct {
			Include string `xml:"Include,attr"`
		} `xml:"PackageReference"`
	} `xml:"ItemGroup"`
}

// loadNuget collects package IDs from packages.config and any *.csproj
// files in the base directory. IDs are stored lowercase since NuGet treats
// them case-insensitively.
func loadNuget(baseDir string) (map[string]struct{}, error) {
	deps := map[string]struct{}{}

	data, err := readManifest(baseDir, packagesConfigName)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var pc packagesConfigXML

		err = xml.Unmarshal(data, &pc)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", packagesConfigName, err)
		}

		for _, p := range pc.Packages {
			if p.ID != "" {
				deps[strings.ToLower(p.ID)] = struct{}{}
			}
		}
	}

	entries, err := os.ReadDir(baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return deps, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csproj" {
			continue
		}

		data, err := readManifest(baseDir, entry.Name())
		if err != nil || data == nil {
			return nil, err
		}

		var proj csprojXML

		err = xml.Unmarshal(data, &proj)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}

		for _, group := range proj.ItemGroups {
			for _, ref := range group.PackageReferences {
				if ref.Include != "" {
					deps[strings.ToLower(ref.Include)] = struct{}{}
				}
			}
		}
	}

	return deps, nil
}
