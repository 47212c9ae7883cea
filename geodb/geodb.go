package geodb

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"iptriage/ipaddresses"
	"iptriage/triage"

	"github.com/google/btree"
	"github.com/rs/zerolog"
)

// NewGeoDB instantiates a new city-level GeoIP database from the given data
// file. A missing or corrupt data file is a fatal configuration error: the
// resolver must not start empty and silently report every address unknown.
func NewGeoDB(logger zerolog.Logger, fs GeoIPFileSystem, dataFileName string) (db triage.GeoDB, err error) {
	impl := &geoDBImpl{tree: btree.New(2), logger: logger, fs: fs}

	geoIPData, err := impl.readDataFromDisk(dataFileName)
	if err != nil {
		err = fmt.Errorf("error while loading GeoIP data set from %v: %w", dataFileName, err)
		return
	}

	if err = impl.PutGeoIPData(geoIPData); err != nil {
		return
	}

	db = impl
	return
}

type geoDBImpl struct {
	tree   *btree.BTree
	logger zerolog.Logger
	fs     GeoIPFileSystem
}

func (db *geoDBImpl) PutGeoIPData(geoIPData []triage.GeoIPCityRecord) (err error) {
	// Sanity check on the data set.
	if err = db.validateGeoIPData(geoIPData); err != nil {
		db.logger.Err(err).Msg("Error while validating GeoIP data set")
		return
	}

	db.updateBTreeData(geoIPData)
	return
}

// Lookup resolves an address to its best-effort geolocation. A miss or a
// malformed address yields the unknown sentinel result, never an error. The
// decision policy guarantees Lookup is not called for special-purpose
// addresses, so a miss here is worth a log line.
func (db *geoDBImpl) Lookup(ipAddr string) triage.EnrichmentResult {
	ip, err := ipaddresses.ParseIPAddress(ipAddr)
	if err != nil {
		return triage.UnknownEnrichment()
	}

	foundNode := db.tree.Get(newGeoIPTreeNodeFromUInt32(ip))
	if foundNode == nil {
		if special, _ := ipaddresses.IsSpecialPurposeAddress(ipAddr); !special {
			db.logger.Warn().Msgf("GeoDB failed to look up record for IP address %s", ipAddr)
		}
		return triage.UnknownEnrichment()
	}

	node := foundNode.(geoIPTreeNode)
	if ip < node.StartIP || ip > node.EndIP {
		return triage.UnknownEnrichment()
	}

	return triage.EnrichmentResult{
		Country:   node.Country,
		City:      node.City,
		Latitude:  node.Latitude,
		Longitude: node.Longitude,
		Status:    triage.EnrichmentResolved,
	}
}

func (db *geoDBImpl) updateBTreeData(geoIPData []triage.GeoIPCityRecord) {
	newTree := btree.New(2)
	for _, rec := range geoIPData {
		node := newGeoIPTreeNodeFromCityRecord(rec)
		newTree.ReplaceOrInsert(node)
	}

	db.tree = newTree
}

func (db *geoDBImpl) readDataFromDisk(filename string) (geoIPData []triage.GeoIPCityRecord, err error) {
	bytes, err := db.fs.ReadFile(filename)
	if err != nil {
		return
	}

	var data = []*geoIPCityRecordImpl{}
	if err = json.Unmarshal(bytes, &data); err != nil {
		return
	}

	for _, rec := range data {
		geoIPData = append(geoIPData, rec)
	}

	return
}

func (db *geoDBImpl) validateGeoIPData(geoIPData []triage.GeoIPCityRecord) (err error) {
	sort.Slice(geoIPData, func(i, j int) bool {
		return geoIPData[i].StartIP() < geoIPData[j].StartIP()
	})

	for i, curr := range geoIPData {
		if curr.StartIP() > curr.EndIP() {
			errFmt := "GeoIP data record (%v, %v, %s) has StartIP greater than EndIP"
			err = fmt.Errorf(errFmt, curr.StartIP(), curr.EndIP(), curr.Country())
			return
		}

		if i == 0 {
			continue
		}

		prev := geoIPData[i-1]
		if curr.StartIP() <= prev.EndIP() {
			errFmt := "Overlap found between data records (%v, %v, %s) and (%v, %v, %s)"
			err = fmt.Errorf(errFmt, prev.StartIP(), prev.EndIP(), prev.Country(), curr.StartIP(), curr.EndIP(), curr.Country())
			return
		}
	}

	return
}

type geoIPTreeNode struct {
	StartIP   uint32
	EndIP     uint32
	Country   string
	City      string
	Latitude  float64
	Longitude float64
}

func (node geoIPTreeNode) Less(other btree.Item) bool {
	return node.StartIP < other.(geoIPTreeNode).StartIP && node.EndIP < other.(geoIPTreeNode).EndIP
}

func newGeoIPTreeNodeFromUInt32(ip uint32) geoIPTreeNode {
	return geoIPTreeNode{StartIP: ip, EndIP: ip}
}

func newGeoIPTreeNodeFromCityRecord(rec triage.GeoIPCityRecord) geoIPTreeNode {
	// Safeguard for data cleanness.
	country := strings.TrimSpace(rec.Country())
	city := strings.TrimSpace(rec.City())

	return geoIPTreeNode{
		StartIP:   rec.StartIP(),
		EndIP:     rec.EndIP(),
		Country:   country,
		City:      city,
		Latitude:  rec.Latitude(),
		Longitude: rec.Longitude(),
	}
}
