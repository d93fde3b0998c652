// Copyright 2025 walteh LLC
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

package opts

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about a command
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📦 LogBatch announces a batch of rules
func (u *UserLogger) LogBatch(description string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(description)
	u.log.Info().Msg(description)
}

// 👀 LogDryRun reminds the user that nothing was written
func (u *UserLogger) LogDryRun() {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "👀"}).Println("dry run, no file was changed")
	u.log.Debug().Msg("dry run finished")
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
	u.log.Warn().Msg(description)
}
