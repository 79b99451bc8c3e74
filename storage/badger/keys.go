package badger

import (
	"fmt"

	"github.com/beogip/boredGPT/core"
)

// Key prefixes for different data types
const (
	entryPrefix     = "vecent"
	namespacePrefix = "vecns"
)

// makeEntryKey generates a key for an index entry inside a namespace.
// Entry identity is the chunk's content-derived ID, so re-upserting the
// same chunk overwrites the previous value.
func makeEntryKey(namespace string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", entryPrefix, namespace, id))
}

// makeEntryScanPrefix generates the iteration prefix covering every entry
// of a namespace and nothing else.
func makeEntryScanPrefix(namespace string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", entryPrefix, namespace))
}

// makeNamespaceKey generates the marker key recording that a namespace
// exists. Written on first upsert; queries against namespaces with no
// marker fail instead of silently returning nothing.
func makeNamespaceKey(namespace string) []byte {
	return []byte(fmt.Sprintf("%s:%s", namespacePrefix, namespace))
}
