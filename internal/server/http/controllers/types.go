package controllers

import "github.com/chenxiaowo/ktrace/internal/trace"

// controlRequest is the wire form of a session control action.
type controlRequest struct {
	Action string   `json:"action"`
	Groups []string `json:"groups,omitempty"`
}

// sizeResponse answers the trace size query.
type sizeResponse struct {
	Size uint32 `json:"size"`
}

// statusResponse is the wire form of a session snapshot.
type statusResponse struct {
	State      string `json:"state"`
	BufferSize int    `json:"bufferSize"`
	Capacity   uint32 `json:"capacity"`
	Cursor     int64  `json:"cursor"`
	Marker     uint32 `json:"marker"`
	GroupMask  uint32 `json:"grpmask"`
	Groups     string `json:"groups"`
	Dropped    uint64 `json:"dropped"`
}

func statusFromSnapshot(s trace.Snapshot) statusResponse {
	return statusResponse{
		State:      s.State.String(),
		BufferSize: s.BufferSize,
		Capacity:   s.Capacity,
		Cursor:     s.Cursor,
		Marker:     s.Marker,
		GroupMask:  s.GroupMask,
		Groups:     trace.MaskGroups(s.GroupMask).String(),
		Dropped:    s.Dropped,
	}
}
