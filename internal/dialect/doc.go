// Package dialect recognizes neighbouring encodings of the same models
// (ifcXML, ifcJSON, ifcZIP archives, gzip, UTF-16 text) in input that is not
// an ISO 10303-21 exchange file.
//
// Detection never changes parsing: it only decides whether a failed file
// gets an extra note explaining what the input actually looks like.
package dialect
