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

// Partition splits items into k contiguous groups whose sizes differ by at
// most one, the larger groups first. k must be positive; groups may be empty
// when k exceeds len(items).
func Partition[T any](items []T, k int) [][]T {
	groups := make([][]T, 0, k)
	base := len(items) / k
	remainder := len(items) % k

	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < remainder {
			size++
		}
		end := start + size
		groups = append(groups, items[start:end:end])
		start = end
	}
	return groups
}
