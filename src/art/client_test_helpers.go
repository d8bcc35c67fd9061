package art

import "net/http"

// SetCAAClient sets the underlying CAAClient which will be used by the Client. Only
// useful for tests.
func (c *MusicBrainzClient) SetCAAClient(caac CAAClient) {
	c.caaClient = caac
}

// SetMusicBrainzAPIURL sets the MusicBrainz API URL. Only useful for tests.
func (c *MusicBrainzClient) SetMusicBrainzAPIURL(apiURL string) {
	c.musicBrainzAPIHost = apiURL
}

// SetITunesAPIURL sets the iTunes Search API URL. Only useful for tests.
func (c *ITunesClient) SetITunesAPIURL(apiURL string) {
	c.apiHost = apiURL
}

// SetHTTPClient sets the HTTP client used for downloads. Only useful for tests.
func (d *Downloader) SetHTTPClient(client *http.Client) {
	d.client = client
}
