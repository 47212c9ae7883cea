package geodb

import (
	"os"

	"github.com/rs/zerolog"
)

type geoIPCityRecordImpl struct {
	StartIPVal   uint32  `json:"StartIP"`
	EndIPVal     uint32  `json:"EndIP"`
	CountryVal   string  `json:"Country"`
	CityVal      string  `json:"City"`
	LatitudeVal  float64 `json:"Latitude"`
	LongitudeVal float64 `json:"Longitude"`
}

func (rec *geoIPCityRecordImpl) StartIP() uint32 {
	return rec.StartIPVal
}

func (rec *geoIPCityRecordImpl) EndIP() uint32 {
	return rec.EndIPVal
}

func (rec *geoIPCityRecordImpl) Country() string {
	return rec.CountryVal
}

func (rec *geoIPCityRecordImpl) City() string {
	return rec.CityVal
}

func (rec *geoIPCityRecordImpl) Latitude() float64 {
	return rec.LatitudeVal
}

func (rec *geoIPCityRecordImpl) Longitude() float64 {
	return rec.LongitudeVal
}

// NewGeoIPFileSystem creates a new file system for handling GeoIP data set I/O
func NewGeoIPFileSystem(logger zerolog.Logger) GeoIPFileSystem {
	return &fileSystemImpl{logger: logger}
}

// GeoIPFileSystem is the interface to handle GeoIP data file read
type GeoIPFileSystem interface {
	ReadFile(filename string) ([]byte, error)
}

type fileSystemImpl struct {
	logger zerolog.Logger
}

// ReadFile is to read the data file and return JSON encoding of the GeoIP data
func (fs *fileSystemImpl) ReadFile(name string) (buf []byte, err error) {
	buf, err = os.ReadFile(name)
	return
}
