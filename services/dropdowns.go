package services

// CategoryOptions is the list of item categories, in the order the
// estimate displays them.
var CategoryOptions = []string{
	CategoryLabor,
	CategoryEquipment,
	CategoryMaterials,
	CategoryConsumables,
	CategoryOther,
}

// ScheduleTypeOptions returns the list of labor schedule types.
var ScheduleTypeOptions = []string{
	ScheduleNormal,
	ScheduleNight,
	ScheduleSunday,
	ScheduleOvertime,
}

// DefaultUnits is the list of common unit labels offered when adding an
// item by hand.
var DefaultUnits = []string{
	"unidades",
	"horas",
	"días",
	"kg",
	"m",
	"m2",
	"m3",
	"litros",
	"piezas",
	"lote",
	"servicio",
	"viaje",
}

// IsValidCategory reports whether the value is one of the fixed categories.
func IsValidCategory(category string) bool {
	for _, c := range CategoryOptions {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidScheduleType reports whether the value is one of the fixed labor
// schedule types.
func IsValidScheduleType(scheduleType string) bool {
	_, ok := scheduleMultipliers[scheduleType]
	return ok
}
