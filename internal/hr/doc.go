// Package hr defines the resource, payload, and filter types exchanged
// with the HR backend, plus the client-side normalization and validation
// rules the console applies before submitting a request.
//
// The types here are plain data carriers. Server-side business rules
// (leave overlap, approval transitions, geofence checks) are not
// duplicated on the client; only the rules the console itself must
// enforce live in this package.
package hr
