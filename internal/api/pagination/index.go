// Package pagination implements the cursor scheme for list responses: the
// date of the last record of a page travels back to the client in a response
// header, and the client passes it as the next request's WHERE upper bound.
package pagination

import "net/http"

// HeaderIndex carries the pagination cursor on list responses.
const HeaderIndex = "X-Paginated-Index"

// SetIndex writes the pagination cursor header. Empty indexes are skipped so
// error responses never carry a stale cursor.
func SetIndex(w http.ResponseWriter, index string) {
	if index == "" {
		return
	}
	w.Header().Set(HeaderIndex, index)
}
