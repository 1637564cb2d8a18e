package domain

// StatTag labels one counter of a feeder's activity statistics. The set is
// fixed; counters only ever increase.
type StatTag string

const (
	StatFed        StatTag = "fed"
	StatVaccinated StatTag = "vaccinated"
	StatSpayed     StatTag = "spayed"
	StatNeutered   StatTag = "neutered"
	StatTreated    StatTag = "treated"
	StatRescued    StatTag = "rescued"
	StatAdopted    StatTag = "adopted"
)

var validStatTags = map[StatTag]bool{
	StatFed:        true,
	StatVaccinated: true,
	StatSpayed:     true,
	StatNeutered:   true,
	StatTreated:    true,
	StatRescued:    true,
	StatAdopted:    true,
}

// IsValid checks if the tag is one of the supported counters.
func (t StatTag) IsValid() bool {
	return validStatTags[t]
}

func (t StatTag) String() string {
	return string(t)
}
