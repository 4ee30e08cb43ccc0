// Copyright 2015 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"mime"

	"github.com/ugorji/go/codec"
)

// Decode tries to decode a restdata object from a reader, such as an
// HTTP request or response.  out must be a pointer type.
func Decode(contentType string, r io.Reader, out interface{}) error {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		// We could also consider http.DetectContentType()
		contentType = "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return err
	}

	// Promote to more specific types
	switch mediaType {
	case "text/json", "application/json", JSONMediaType, V1JSONMediaType:
		mediaType = V1JSONMediaType

	default:
		return ErrUnsupportedMediaType{Type: mediaType}
	}

	// Actually decode the object based on the selected type.
	switch mediaType {
	case V1JSONMediaType:
		json := &codec.JsonHandle{}
		decoder := codec.NewDecoder(r, json)
		err = decoder.Decode(out)
	default:
		err = ErrUnsupportedMediaType{Type: mediaType}
	}
	return err
}

// Encode writes a restdata object to a writer, such as an HTTP
// response, in the representation named by mediaType.  The media type
// should have already been negotiated against the caller's Accept
// header; an unrecognized type returns ErrUnsupportedMediaType.
func Encode(mediaType string, w io.Writer, in interface{}) error {
	switch mediaType {
	case "text/json", "application/json", JSONMediaType, V1JSONMediaType:
		json := &codec.JsonHandle{}
		encoder := codec.NewEncoder(w, json)
		return encoder.Encode(in)
	}
	return ErrUnsupportedMediaType{Type: mediaType}
}
