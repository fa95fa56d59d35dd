package cachesemantics

import (
	"bytes"
	"encoding/gob"
	"net/http"
	"time"
)

// PolicySnapshot is the optional serializable form of a CachePolicy,
// mentioned as a non-mandatory capability in SPEC_FULL.md: the engine's
// semantics never depend on whether a policy was ever marshaled.
type PolicySnapshot struct {
	Method       string
	URI          string
	ReqHeader    http.Header
	ResHeader    http.Header
	Status       int
	ResponseTime time.Time
	Options      Options
}

// Snapshot captures the policy's fields for serialization.
func (p *CachePolicy) Snapshot() PolicySnapshot {
	return PolicySnapshot{
		Method:       p.method,
		URI:          p.uri,
		ReqHeader:    p.reqHeader.Clone(),
		ResHeader:    p.resHeader.Clone(),
		Status:       p.status,
		ResponseTime: p.responseTime,
		Options:      p.opts,
	}
}

// Restore rebuilds a CachePolicy from a snapshot, re-deriving the parsed
// Cache-Control directive maps (so a hand-edited snapshot can't smuggle in
// an inconsistent directive set).
func (s PolicySnapshot) Restore() *CachePolicy {
	req := snapshotRequestView{method: s.Method, uri: s.URI, header: s.ReqHeader}
	res := constructedResponseView{status: s.Status, header: s.ResHeader}
	return New(req, res, s.ResponseTime, s.Options)
}

// snapshotRequestView adapts a restored PolicySnapshot's request fields to
// RequestView.
type snapshotRequestView struct {
	method string
	uri    string
	header http.Header
}

func (v snapshotRequestView) Method() string         { return v.method }
func (v snapshotRequestView) URI() string            { return v.uri }
func (v snapshotRequestView) SameURI(o string) bool  { return v.uri == o }
func (v snapshotRequestView) Header() http.Header    { return v.header }

// Marshal gob-encodes a PolicySnapshot.
func Marshal(s PolicySnapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a PolicySnapshot produced by Marshal.
func Unmarshal(data []byte) (PolicySnapshot, error) {
	var s PolicySnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return PolicySnapshot{}, err
	}
	return s, nil
}
