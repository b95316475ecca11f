// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package color

import (
	"fmt"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

// Outputs to stdout.
//
// e.g.,
//
//	Outf("{{green}}{{bold}}generated %q{{/}}", "m2-s3")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	fmt.Fprint(formatter.ColorableStdOut, Sprintf(format, args...))
}

// Outputs to stderr.
func Errf(format string, args ...interface{}) {
	fmt.Fprint(formatter.ColorableStdErr, Sprintf(format, args...))
}

// Sprintf formats with the ginkgo color markup, e.g. "{{red}}x{{/}}".
func Sprintf(format string, args ...interface{}) string {
	return formatter.F(format, args...)
}

func Greenf(format string, args ...interface{}) {
	Outf(fmt.Sprintf("{{green}}%s{{/}}", format), args...)
}

func Redf(format string, args ...interface{}) {
	Errf(fmt.Sprintf("{{red}}%s{{/}}", format), args...)
}
