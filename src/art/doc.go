/*
Package art is responsible for finding album artwork for a free text search
term over the internet.

Every source of artwork is a Provider. A provider turns a search term into a
Candidate: the best matching track or release together with the URL of its
front cover. Providers classify their failures with the sentinel errors of this
package so that callers may decide what is worth retrying with Retryable.

The following APIs are used to achieve this packages' objective:

  - iTunes Search API: https://performance-partners.apple.com/search-api
  - MusicBrainz API: https://musicbrainz.org/doc/Development/XML_Web_Service/Version_2
  - Cover Art Archive: https://musicbrainz.org/doc/Cover_Art_Archive/
*/
package art
