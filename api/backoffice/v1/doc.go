// Package backofficev1 declares the gRPC surface of the back-office service:
// request/response messages, server interfaces and service descriptors.
// Messages travel with the JSON codec from pkg/rpc.
package backofficev1

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const pkgName = "omnipos.backoffice.v1."

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}
