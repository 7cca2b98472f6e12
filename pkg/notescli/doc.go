// Package notescli implements the notes command, a thin command-line front
// end over the notes client.
//
// Each invocation runs a single operation (list, create, update or delete)
// and prints the server's JSON response. See [Main] for usage.
package notescli
