/**
 * Copyright (c) 2024 Peking University and Peking University
 * Changsha Institute for Computing and Digital Economy
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package jobscript

import (
	"errors"
	"fmt"
	"strings"

	"batchelor/internal/util"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
)

// HasGlobMeta reports whether pattern should be enumerated as a glob rather
// than taken literally.
func HasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// ExpandInputs resolves patterns into input tokens in pattern order. Tokens
// naming an existing path are canonicalized, everything else passes through
// verbatim so work can target paths that only exist on the compute nodes.
// The result is not sorted.
func ExpandInputs(patterns []string) ([]string, error) {
	inputs := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !HasGlobMeta(pattern) {
			token, err := normalizeInput(pattern)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, token)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFailOnIOErrors())
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, util.WrapBatchErr(util.ErrorGlobSyntax,
					fmt.Sprintf("invalid glob pattern %q", pattern), err)
			}
			return nil, util.WrapBatchErr(util.ErrorIo,
				fmt.Sprintf("failed to expand glob %q", pattern), err)
		}
		if len(matches) == 0 {
			log.Warnf("Glob %q matched nothing.", pattern)
		}

		for _, match := range matches {
			token, err := normalizeInput(match)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, token)
		}
	}

	log.Debugf("Expanded %d pattern(s) into %d input(s).", len(patterns), len(inputs))
	return inputs, nil
}

func normalizeInput(token string) (string, error) {
	if !util.PathExists(token) {
		return token, nil
	}
	canonical, err := util.Canonicalize(token)
	if err != nil {
		return "", util.WrapBatchErr(util.ErrorIo,
			fmt.Sprintf("failed to canonicalize %s", token), err)
	}
	return canonical, nil
}
