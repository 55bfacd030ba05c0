package services

import (
	"fmt"
	"net/url"
	"strconv"

	"learnhub/internal/features/contact/models"
)

// Static map endpoints
const (
	StaticMapEndpoint = "https://staticmap.openstreetmap.de/staticmap.php"
	MapLinkEndpoint   = "https://www.openstreetmap.org/"
)

// Default static map image size in pixels
const (
	MapWidth  = 600
	MapHeight = 400
)

// NewOfficeMap builds the static map image and the interactive map link
// for the office location
func NewOfficeMap(address string, lat, lon float64, zoom int) models.OfficeMap {
	coords := formatCoord(lat) + "," + formatCoord(lon)

	img := url.Values{}
	img.Set("center", coords)
	img.Set("zoom", strconv.Itoa(zoom))
	img.Set("size", fmt.Sprintf("%dx%d", MapWidth, MapHeight))
	img.Set("markers", coords+",red-pushpin")

	link := url.Values{}
	link.Set("mlat", formatCoord(lat))
	link.Set("mlon", formatCoord(lon))

	return models.OfficeMap{
		Address:   address,
		Latitude:  lat,
		Longitude: lon,
		Zoom:      zoom,
		ImageURL:  StaticMapEndpoint + "?" + img.Encode(),
		LinkURL:   fmt.Sprintf("%s?%s#map=%d/%s/%s", MapLinkEndpoint, link.Encode(), zoom, formatCoord(lat), formatCoord(lon)),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
