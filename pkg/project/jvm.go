package project

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

const pomXMLName = "pom.xml"

var gradleFileNames = []string{"build.gradle", "build.gradle.kts"}

type pomXML struct {
	XMLName      xml.Name `xml:"project"`
	Dependencies struct {
		Dependency []struct {
			GroupID    string `xml:"groupId"`
			ArtifactID string `xml:"artifactId"`
		} `xml:"dependency"`
	} `xml:"dependencies"`
}

// loadMaven collects dependency coordinates from pom.xml. Each dependency is
// addressable both as `group:artifact` and by bare artifact ID.
func loadMaven(baseDir string) (map[string]struct{}, error) {
	data, err := readManifest(baseDir, pomXMLName)
	if err != nil || data == nil {
		return nil, err
	}

	var pom pomXML

	err = xml.Unmarshal(data, &pom)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pomXMLName, err)
	}

	deps := map[string]struct{}{}
	for _, dep := range pom.Dependencies.Dependency {
		if dep.ArtifactID == "" {
			continue
		}

		deps[dep.ArtifactID] = struct{}{}
		if dep.GroupID != "" {
			deps[dep.GroupID+":"+dep.ArtifactID] = struct{}{}
		}
	}

	return deps, nil
}

// gradlePattern matches dependency declarations in Groovy and Kotlin DSL
// build scripts, capturing the `group:artifact:version` coordinate.
var gradlePattern = regexp.MustCompile(
	`(?m)^\s*(?:implementation|api|compileOnly|runtimeOnly|testImplementation|testRuntimeOnly|annotationProcessor|classpath)\s*\(?\s*['"]([^'"]+)['"]`,
)

// loadGradle collects dependency coordinates from build.gradle or
// build.gradle.kts, addressable as `group:artifact` or bare artifact.
func loadGradle(baseDir string) (map[string]struct{}, error) {
	deps := map[string]struct{}{}

	for _, name := range gradleFileNames {
		data, err := readManifest(baseDir, name)
		if err != nil {
			return nil, err
		}

		for _, m := range gradlePattern.FindAllSubmatch(data, -1) {
			coordinate := string(m[1])

			parts := strings.Split(coordinate, ":")
			if len(parts) >= 2 {
				deps[parts[0]+":"+parts[1]] = struct{}{}
				deps[parts[1]] = struct{}{}
			} else {
				deps[coordinate] = struct{}{}
			}
		}
	}

	return deps, nil
}
