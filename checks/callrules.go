// Copyright 2026 The Quarry Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/quarrylint/quarry/internal/callcheck"
	"github.com/quarrylint/quarry/internal/irutil"
	"github.com/quarrylint/quarry/lint"
	"github.com/quarrylint/quarry/vrp"
)

// CheckRegexps validates constant patterns passed to regexp functions.
func (c *Checker) CheckRegexps(j *lint.Job) {
	callcheck.Run(j, c.funcDescs, map[string]callcheck.Rule{
		"regexp.Compile":          validateRegexp(0),
		"regexp.Match":            validateRegexp(0),
		"regexp.MatchReader":      validateRegexp(0),
		"regexp.MatchString":      validateRegexp(0),
		"regexp.MustCompile":      validateRegexp(0),
		"regexp.MustCompilePOSIX": validateRegexp(0),
	})
}

// CheckTimeLayouts validates constant layouts passed to time.Parse.
func (c *Checker) CheckTimeLayouts(j *lint.Job) {
	callcheck.Run(j, c.funcDescs, map[string]callcheck.Rule{
		"time.Parse": validateTimeLayout(0),
	})
}

// CheckURLs validates constant strings passed to url.Parse.
func (c *Checker) CheckURLs(j *lint.Job) {
	callcheck.Run(j, c.funcDescs, map[string]callcheck.Rule{
		"net/url.Parse": validateURL(0),
	})
}

// CheckZeroCountFindAll flags find-all and split calls whose count
// argument is provably zero.
func (c *Checker) CheckZeroCountFindAll(j *lint.Job) {
	callcheck.Run(j, c.funcDescs, map[string]callcheck.Rule{
		"(*regexp.Regexp).FindAll":                    repeatZeroTimes("a FindAll method", 1),
		"(*regexp.Regexp).FindAllIndex":               repeatZeroTimes("a FindAll method", 1),
		"(*regexp.Regexp).FindAllString":              repeatZeroTimes("a FindAll method", 1),
		"(*regexp.Regexp).FindAllStringIndex":         repeatZeroTimes("a FindAll method", 1),
		"(*regexp.Regexp).FindAllStringSubmatch":      repeatZeroTimes("a FindAll method", 1),
		"(*regexp.Regexp).FindAllStringSubmatchIndex": repeatZeroTimes("a FindAll method", 1),
		"(*regexp.Regexp).FindAllSubmatch":            repeatZeroTimes("a FindAll method", 1),
		"(*regexp.Regexp).FindAllSubmatchIndex":       repeatZeroTimes("a FindAll method", 1),
		"bytes.SplitAfterN":                           repeatZeroTimes("bytes.SplitAfterN", 2),
		"bytes.SplitN":                                repeatZeroTimes("bytes.SplitN", 2),
		"strings.SplitAfterN":                         repeatZeroTimes("strings.SplitAfterN", 2),
		"strings.SplitN":                              repeatZeroTimes("strings.SplitN", 2),
	})
}

// CheckZeroCountReplace flags replace calls whose count argument is
// provably zero.
func (c *Checker) CheckZeroCountReplace(j *lint.Job) {
	callcheck.Run(j, c.funcDescs, map[string]callcheck.Rule{
		"bytes.Replace":   repeatZeroTimes("bytes.Replace", 3),
		"strings.Replace": repeatZeroTimes("strings.Replace", 3),
	})
}

// CheckUnbufferedSignalChan flags unbuffered channels handed to
// signal.Notify.
func (c *Checker) CheckUnbufferedSignalChan(j *lint.Job) {
	callcheck.Run(j, c.funcDescs, map[string]callcheck.Rule{
		"os/signal.Notify": func(call *callcheck.Call) {
			if len(call.Args) == 0 {
				return
			}

			if ci, ok := call.Args[0].Value.Range.(vrp.ChannelInterval); ok && ci.Size.Exactly(0) {
				call.Args[0].Invalid("the channel used with signal.Notify should be buffered")
			}
		},
	})
}

func validateRegexp(argN int) callcheck.Rule {
	return constStringRule(argN, func(s string) error {
		_, err := regexp.Compile(s)

		return err
	})
}

func validateTimeLayout(argN int) callcheck.Rule {
	return constStringRule(argN, func(s string) error {
		// Some layout elements intentionally fail to parse themselves.
		s = strings.ReplaceAll(s, "_", " ")
		s = strings.ReplaceAll(s, "Z", "-")

		_, err := time.Parse(s, s)

		return err
	})
}

func validateURL(argN int) callcheck.Rule {
	return constStringRule(argN, func(s string) error {
		_, err := url.Parse(s)

		return err
	})
}

// constStringRule runs validate against a compile-time constant string
// argument and converts a failure into a diagnostic carrying the
// underlying parser's message. Non-constant arguments abstain.
func constStringRule(argN int, validate func(s string) error) callcheck.Rule {
	return func(call *callcheck.Call) {
		if len(call.Args) <= argN {
			return
		}

		arg := call.Args[argN]

		s, ok := irutil.ConstString(arg.Value.Value)
		if !ok {
			return
		}

		if err := validate(s); err != nil {
			arg.Invalid(err.Error())
		}
	}
}

func repeatZeroTimes(name string, argN int) callcheck.Rule {
	return func(call *callcheck.Call) {
		if len(call.Args) <= argN {
			return
		}

		if iv, ok := call.Args[argN].Value.Range.(vrp.IntInterval); ok && iv.Exactly(0) {
			call.Args[argN].Invalid(fmt.Sprintf("calling %s with n == 0 will return no results, did you mean -1?", name))
		}
	}
}
