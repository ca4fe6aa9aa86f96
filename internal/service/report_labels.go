package service

import (
	"fmt"
	"strings"
	"time"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

func ParseLanguage(value string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(value))) {
	case "", LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageSpanish:
		return LanguageSpanish, nil
	default:
		return "", fmt.Errorf("unsupported report language %q (use en or es)", value)
	}
}

type reportLabels struct {
	title           string
	generated       string
	totalEntries    string
	profile         string
	age             string
	years           string
	gender          string
	height          string
	weight          string
	activity        string
	goal            string
	target          string
	targetProvided  string
	targetEstimated string
	targetMissing   string
	conditions      string
	notes           string
	instructions    []string
	date            string
	mealType        string
	time            string
	calories        string
	size            string
	comments        string
	dailyTotal      string
	entries         string
	caloriesWord    string
	grams           string
	vsTarget        string
	summary         string
	sumEntries      string
	sumCalories     string
	sumAverage      string
	sumVariance     string
	sumWeight       string
	sumPeriod       string
	sumDays         string
	periodToday     string
	periodWeek      string
	periodMonth     string
	periodRange     string
	timeLayout      string
	weekdays        [7]string
	months          [12]string
	dateFormat      func(l reportLabels, t time.Time) string
}

var labelsByLanguage = map[Language]reportLabels{
	LanguageEnglish: {
		title:           "FOOD TRACKING DATA",
		generated:       "Generated",
		totalEntries:    "Total Entries",
		profile:         "USER PROFILE",
		age:             "Age",
		years:           "years",
		gender:          "Gender",
		height:          "Height",
		weight:          "Weight",
		activity:        "Activity level",
		goal:            "Goal",
		target:          "Daily calorie target",
		targetProvided:  "(user-provided)",
		targetEstimated: "(estimated — please verify)",
		targetMissing:   "not available, profile is incomplete",
		conditions:      "Health conditions",
		notes:           "Additional notes",
		instructions: []string{
			"ANALYSIS INSTRUCTIONS:",
			"Please analyze the food log below as a nutrition assistant.",
			"- Compare each day's calorie intake with the daily target from the profile.",
			"- Comment on meal timing, variety and portion sizes.",
			"- Point out patterns that work against the stated goal.",
			"- Finish with concrete, practical recommendations for the coming days.",
		},
		date:         "DATE",
		mealType:     "Meal Type",
		time:         "Time",
		calories:     "Calories",
		size:         "Size",
		comments:     "Comments",
		dailyTotal:   "Daily Total",
		entries:      "entries",
		caloriesWord: "calories",
		grams:        "grams",
		vsTarget:     "vs target",
		summary:      "OVERALL SUMMARY",
		sumEntries:   "Total entries",
		sumCalories:  "Total calories",
		sumAverage:   "Average calories per tracked day",
		sumVariance:  "Average difference vs target",
		sumWeight:    "Total weight",
		sumPeriod:    "Period",
		sumDays:      "Days tracked",
		periodToday:  "Today",
		periodWeek:   "This Week",
		periodMonth:  "This Month (30 days)",
		periodRange:  "%s to %s",
		timeLayout:   "03:04 PM",
		weekdays:     [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		dateFormat: func(l reportLabels, t time.Time) string {
			return fmt.Sprintf("%s, %s %d, %d", l.weekdays[t.Weekday()], l.months[t.Month()-1], t.Day(), t.Year())
		},
	},
	LanguageSpanish: {
		title:           "DATOS DE SEGUIMIENTO DE ALIMENTOS",
		generated:       "Generado",
		totalEntries:    "Total de registros",
		profile:         "PERFIL DEL USUARIO",
		age:             "Edad",
		years:           "años",
		gender:          "Sexo",
		height:          "Altura",
		weight:          "Peso",
		activity:        "Nivel de actividad",
		goal:            "Objetivo",
		target:          "Objetivo calórico diario",
		targetProvided:  "(indicado por el usuario)",
		targetEstimated: "(estimado — por favor verifícalo)",
		targetMissing:   "no disponible, el perfil está incompleto",
		conditions:      "Condiciones de salud",
		notes:           "Notas adicionales",
		instructions: []string{
			"INSTRUCCIONES DE ANÁLISIS:",
			"Analiza el registro de comidas siguiente como asistente de nutrición.",
			"- Compara la ingesta calórica de cada día con el objetivo diario del perfil.",
			"- Comenta los horarios de las comidas, la variedad y el tamaño de las porciones.",
			"- Señala los patrones que van en contra del objetivo indicado.",
			"- Termina con recomendaciones concretas y prácticas para los próximos días.",
		},
		date:         "FECHA",
		mealType:     "Tipo de comida",
		time:         "Hora",
		calories:     "Calorías",
		size:         "Tamaño",
		comments:     "Comentarios",
		dailyTotal:   "Total del día",
		entries:      "registros",
		caloriesWord: "calorías",
		grams:        "gramos",
		vsTarget:     "vs objetivo",
		summary:      "RESUMEN GENERAL",
		sumEntries:   "Total de registros",
		sumCalories:  "Calorías totales",
		sumAverage:   "Promedio de calorías por día registrado",
		sumVariance:  "Diferencia media vs objetivo",
		sumWeight:    "Peso total",
		sumPeriod:    "Periodo",
		sumDays:      "Días registrados",
		periodToday:  "Hoy",
		periodWeek:   "Esta semana",
		periodMonth:  "Este mes (30 días)",
		periodRange:  "%s a %s",
		timeLayout:   "15:04",
		weekdays:     [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		dateFormat: func(l reportLabels, t time.Time) string {
			return fmt.Sprintf("%s, %d de %s de %d", l.weekdays[t.Weekday()], t.Day(), l.months[t.Month()-1], t.Year())
		},
	},
}

func labelsFor(lang Language) reportLabels {
	if l, ok := labelsByLanguage[lang]; ok {
		return l
	}
	return labelsByLanguage[LanguageEnglish]
}
