package webserver

import "net/http"

// The following are URL Path endpoints of the control API.
const (
	EndpointUpdate         = "/update"
	EndpointPause          = "/pause"
	EndpointResume         = "/resume"
	EndpointStop           = "/stop"
	EndpointCurrent        = "/current"
	EndpointStatus         = "/status"
	EndpointCacheStats     = "/cache/stats"
	EndpointCache          = "/cache"
	EndpointCacheClear     = "/cache/clear"
	EndpointCurrentArtwork = "/artwork/current"
	EndpointQR             = "/qr"
	EndpointEvents         = "/events"
	EndpointAbout          = "/about"
)

// EndpointMethods defines on which HTTP methods the endpoints will respond to.
// It is an uri_path => list of HTTP methods map.
var EndpointMethods = map[string][]string{
	EndpointUpdate:         {http.MethodPost},
	EndpointPause:          {http.MethodPost},
	EndpointResume:         {http.MethodPost},
	EndpointStop:           {http.MethodPost},
	EndpointCurrent:        {http.MethodGet},
	EndpointStatus:         {http.MethodGet},
	EndpointCacheStats:     {http.MethodGet},
	EndpointCache:          {http.MethodGet},
	EndpointCacheClear:     {http.MethodPost},
	EndpointCurrentArtwork: {http.MethodGet, http.MethodHead},
	EndpointQR:             {http.MethodGet},
	EndpointEvents:         {http.MethodGet},
	EndpointAbout:          {http.MethodGet},
}
