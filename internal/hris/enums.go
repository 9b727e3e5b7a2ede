package hris

import (
	"bytes"
	"strconv"
)

// The backend encodes these enumerations as small integers. Reads are
// lenient: an unrecognized or missing code maps to a documented fallback
// variant instead of failing the record. Writes are strict because the
// domain types only hold known variants.

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type CivilStatus string

const (
	CivilSingle    CivilStatus = "Single"
	CivilMarried   CivilStatus = "Married"
	CivilDivorced  CivilStatus = "Divorced"
	CivilWidowed   CivilStatus = "Widowed"
	CivilSeparated CivilStatus = "Separated"
)

type EmploymentStatus string

const (
	EmploymentProbationary EmploymentStatus = "Probationary"
	EmploymentRegular      EmploymentStatus = "Regular"
	EmploymentContractual  EmploymentStatus = "Contractual"
	EmploymentProjectBased EmploymentStatus = "ProjectBased"
	EmploymentResigned     EmploymentStatus = "Resigned"
	EmploymentTerminated   EmploymentStatus = "Terminated"
)

var (
	genderFromCode = map[int]Gender{0: GenderMale, 1: GenderFemale, 2: GenderOther}
	genderToCode   = map[Gender]int{GenderMale: 0, GenderFemale: 1, GenderOther: 2}

	civilStatusFromCode = map[int]CivilStatus{
		0: CivilSingle, 1: CivilMarried, 2: CivilDivorced, 3: CivilWidowed, 4: CivilSeparated,
	}
	civilStatusToCode = map[CivilStatus]int{
		CivilSingle: 0, CivilMarried: 1, CivilDivorced: 2, CivilWidowed: 3, CivilSeparated: 4,
	}

	employmentStatusFromCode = map[int]EmploymentStatus{
		0: EmploymentProbationary, 1: EmploymentRegular, 2: EmploymentContractual,
		3: EmploymentProjectBased, 4: EmploymentResigned, 5: EmploymentTerminated,
	}
	employmentStatusToCode = map[EmploymentStatus]int{
		EmploymentProbationary: 0, EmploymentRegular: 1, EmploymentContractual: 2,
		EmploymentProjectBased: 3, EmploymentResigned: 4, EmploymentTerminated: 5,
	}
)

// enumCode tolerates the backend sending enum values as numbers, numeric
// strings, or null. Unmarshaling never fails; unusable values read as
// absent and fall through to the field's fallback variant.
type enumCode struct {
	code int
	ok   bool
}

func (e *enumCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = enumCode{}
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			*e = enumCode{}
			return nil
		}
		data = []byte(unquoted)
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*e = enumCode{}
		return nil
	}
	*e = enumCode{code: n, ok: true}
	return nil
}

func mapGender(e enumCode) Gender {
	if e.ok {
		if g, known := genderFromCode[e.code]; known {
			return g
		}
	}
	return GenderOther
}

func mapCivilStatus(e enumCode) CivilStatus {
	if e.ok {
		if cs, known := civilStatusFromCode[e.code]; known {
			return cs
		}
	}
	return CivilSingle
}

func mapEmploymentStatus(e enumCode) EmploymentStatus {
	if e.ok {
		if es, known := employmentStatusFromCode[e.code]; known {
			return es
		}
	}
	return EmploymentProbationary
}

func (g Gender) code() int {
	if c, known := genderToCode[g]; known {
		return c
	}
	return genderToCode[GenderOther]
}

func (cs CivilStatus) code() int {
	if c, known := civilStatusToCode[cs]; known {
		return c
	}
	return civilStatusToCode[CivilSingle]
}

func (es EmploymentStatus) code() int {
	if c, known := employmentStatusToCode[es]; known {
		return c
	}
	return employmentStatusToCode[EmploymentProbationary]
}
