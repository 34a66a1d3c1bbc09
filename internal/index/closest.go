package index

import "sort"

func levenshtein(str string, tgt string) int {
	if len(str) == 0 {
		return len(tgt)
	}

	if len(tgt) == 0 {
		return len(str)
	}

	src, dst := []rune(str), []rune(tgt)

	dists := make([][]int, len(src)+1)
	for i := range dists {
		dists[i] = make([]int, len(dst)+1)
		dists[i][0] = i
	}

	for j := range dst {
		dists[0][j+1] = j + 1
	}

	for sidx, sc := range src {
		for tidx, tc := range dst {
			if sc == tc {
				dists[sidx+1][tidx+1] = dists[sidx][tidx]

				continue
			}

			best := dists[sidx][tidx]
			if dists[sidx+1][tidx] < best {
				best = dists[sidx+1][tidx]
			}
			if dists[sidx][tidx+1] < best {
				best = dists[sidx][tidx+1]
			}

			dists[sidx+1][tidx+1] = best + 1
		}
	}

	return dists[len(src)][len(dst)]
}

// closestChoice returns the choice with the smallest edit distance to cmd.
// Ties are broken alphabetically, so that results do not depend on map order.
func closestChoice(cmd string, choices []string) (string, int) {
	if len(choices) == 0 {
		return "", 0
	}

	sort.Strings(choices)

	mincmd := -1
	mindist := -1

	for i, c := range choices {
		l := levenshtein(cmd, c)

		if mincmd < 0 || l < mindist {
			mindist = l
			mincmd = i
		}
	}

	return choices[mincmd], mindist
}
