package integrationtesting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"iptriage/blacklist"
	"iptriage/classifier"
	"iptriage/features"
	"iptriage/geodb"
	"iptriage/ipaddresses"
	"iptriage/logging"
	"iptriage/testutils"
	"iptriage/training"
	"iptriage/triage"
)

// Two city ranges covering 8.8.8.0/24 and 31.13.65.0/24.
const testGeoIPDataJSON = `[
	{"StartIP": 134744064, "EndIP": 134744319, "Country": "United States", "City": "Mountain View", "Latitude": 37.386, "Longitude": -122.0838},
	{"StartIP": 520962304, "EndIP": 520962559, "Country": "United Kingdom", "City": "London", "Latitude": 51.5074, "Longitude": -0.1278}
]`

const testBlacklistCSV = "1.2.3.4\n6.6.6.6\n"

const testCorpusCSV = `IP,Time,Accept-Language,Location,Threat Level
8.8.8.8,2024-01-01 00:00:00,en-US,"United States, California",0
31.13.65.1,2024-01-02 00:00:00,en-GB,"United Kingdom, England",1
`

// A single decision stump on the country code. With the test corpus the
// fitted country vocabulary is {United Kingdom: 0, United States: 1}, so the
// United Kingdom scores verify and everything else scores safe.
const testModelJSON = `{
	"featureCount": 7,
	"trees": [
		{"nodes": [
			{"feature": 3, "threshold": 0.5, "left": 1, "right": 2},
			{"feature": 0, "threshold": 0, "left": -1, "right": -1, "class": 1},
			{"feature": 0, "threshold": 0, "left": -1, "right": -1, "class": 0}
		]}
	]
}`

func writeTestFile(t *testing.T, dir string, name string, content string) string {
	fileName := filepath.Join(dir, name)
	if err := os.WriteFile(fileName, []byte(content), 0644); err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}
	return fileName
}

// newTestTriageServer runs the full offline pass over the test corpus,
// persists the resulting artifacts, and then wires a serving pipeline from
// the persisted files, the same way cmd/train followed by cmd/server would.
func newTestTriageServer(t *testing.T) triage.Server {
	logger := testutils.NewTestLogger(t)
	dir := t.TempDir()
	blacklistFile := writeTestFile(t, dir, "blacklist_ips.csv", testBlacklistCSV)
	geoFile := writeTestFile(t, dir, "geoipcitydata.json", testGeoIPDataJSON)
	modelFile := writeTestFile(t, dir, "model.json", testModelJSON)
	artifactsFile := filepath.Join(dir, "features.json")

	ac := ipaddresses.NewClassifier()

	bl, err := blacklist.NewBlacklistEngine(&blacklist.FileSystemImpl{}, blacklistFile)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	geoDB, err := geodb.NewGeoDB(logger, geodb.NewGeoIPFileSystem(logger), geoFile)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	// Offline pass: corpus in, frozen artifacts out.
	records, err := training.LoadCorpus(strings.NewReader(testCorpusCSV))
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}
	preparer := training.NewPreparer(logger, ac, geoDB, bl, 2)
	prepared, err := preparer.Prepare(records)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}
	if err = prepared.Artifacts.Save(&features.ArtifactFileSystemImpl{}, artifactsFile); err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	// Serving pass: everything comes back from disk.
	artifacts, err := features.LoadArtifacts(&features.ArtifactFileSystemImpl{}, artifactsFile)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}
	fa := features.NewAssembler(logger, ac, geoDB, artifacts)

	model, err := classifier.NewForestClassifier(logger, &classifier.ModelFileSystemImpl{}, modelFile)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	server, err := triage.NewServer(logger, ac, bl, fa, model, logging.NewZerologResultsLogger(logger))
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	return server
}
