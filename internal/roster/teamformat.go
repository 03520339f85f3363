package roster

import (
	"regexp"
	"strconv"
)

// DefaultMaxPlayers is used when neither a format nor a roster is known.
const DefaultMaxPlayers = 12

// maxSidePlayers caps one side of a parsed format.
const maxSidePlayers = 99

var (
	sidesPattern  = regexp.MustCompile(`(?i)(\d+)\s*[vx\-]\s*(\d+)`)
	numberPattern = regexp.MustCompile(`\d+`)
)

// DeduceTeamFormat guesses the team format from the number of players on a
// roster. It returns "" when the count fits no format.
func DeduceTeamFormat(playerCount int) string {
	switch {
	case playerCount >= 20:
		return "11v11"
	case playerCount >= 16:
		return "9v9"
	case playerCount >= 12:
		return "7v7"
	case playerCount >= 10:
		return "5v5"
	default:
		return ""
	}
}

// ComputeMaxPlayers derives match capacity from the team format, falling back
// to the roster size and then to DefaultMaxPlayers.
func ComputeMaxPlayers(format string, players []string) MaxPlayers {
	if format != "" {
		if m := sidesPattern.FindStringSubmatch(format); m != nil {
			home, errHome := strconv.Atoi(m[1])
			away, errAway := strconv.Atoi(m[2])
			if errHome == nil && errAway == nil && validSide(home) && validSide(away) {
				return MaxPlayers{Count: home + away}
			}
		} else if nums := numberPattern.FindAllString(format, -1); len(nums) == 1 {
			// "Fútbol 7": one side's size, teams assumed symmetric.
			if side, err := strconv.Atoi(nums[0]); err == nil && validSide(side) {
				return MaxPlayers{Count: side * 2}
			}
		}
	}

	if n := len(players); n > 0 {
		if n%2 == 1 {
			return MaxPlayers{Count: n + 1, RoundedUp: true}
		}
		return MaxPlayers{Count: n}
	}

	return MaxPlayers{Count: DefaultMaxPlayers}
}

// validSide rejects zero and absurd team sizes so a garbled format falls
// back to the roster instead of producing a bogus capacity.
func validSide(n int) bool {
	return n > 0 && n <= maxSidePlayers
}
