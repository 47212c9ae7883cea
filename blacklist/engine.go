package blacklist

import (
	"strings"
	"sync"

	"iptriage/triage"
)

type engineImpl struct {
	addrSet    map[string]bool
	writeMutex sync.Mutex
	fs         fileSystem
}

// NewBlacklistEngine creates an engine holding the denylist of address
// literals, loaded once from the given newline-delimited file. A missing
// file is a configuration error: the denylist is part of the short-circuit
// policy and must not silently come up empty.
func NewBlacklistEngine(fs fileSystem, fileName string) (engine triage.BlacklistEngine, err error) {
	e := &engineImpl{fs: fs}

	addrs, err := e.readFromDisk(fileName)
	if err != nil {
		return
	}

	e.addrSet = newAddrSet(addrs)
	engine = e
	return
}

// Match does an exact lookup of the address literal. Representations of the
// same address differing in form (compressed vs. expanded) are distinct
// entries; the loader only trims surrounding whitespace.
func (e *engineImpl) Match(addr string) bool {
	return e.addrSet[addr]
}

func (e *engineImpl) PutBlacklist(addrs []string) {
	e.writeMutex.Lock()
	defer e.writeMutex.Unlock()
	e.addrSet = newAddrSet(addrs)
}

func (e *engineImpl) readFromDisk(fileName string) (addrs []string, err error) {
	data, err := e.fs.readFile(fileName)
	if err != nil {
		return
	}

	addrs = strings.Split(string(data), "\n")
	return
}

func newAddrSet(addrs []string) map[string]bool {
	set := make(map[string]bool)
	for _, addr := range addrs {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		set[addr] = true
	}
	return set
}
