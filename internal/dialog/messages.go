package dialog

import (
	"github.com/temberanawe/ussd/internal/domain"
)

// copyset holds every localized string the dialog renders. Translation
// correctness is best-effort; English is the fallback.
type copyset struct {
	mainTitle string

	favoritesLabel  string
	bookingsLabel   string
	savingsLabel    string
	helpLabel       string
	changeLangLabel string
	exitLabel       string

	districtTitle string // region name
	placesTitle   string // district name
	noPlaces      string

	favoritesTitle string
	noFavorites    string
	bookingsTitle  string
	noBookings     string

	detailDetails  string
	detailFavorite string
	detailBook     string
	detailHelp     string

	savingsTitle string
	depositLabel string
	balanceLabel string
	goalsLabel   string
	balanceText  string // total, streak, points

	goalsTitle      string
	createGoalLabel string
	goalDetail      string // title, target, saved, deadline, status

	depositPrompt  string
	depositInvalid string
	depositDone    string // amount, total, streak, points

	goalTitlePrompt  string
	goalTitleInvalid string
	goalAmountPrompt string
	goalDaysPrompt   string
	goalDaysInvalid  string
	goalCreated      string // title, target, deadline

	favoriteAdded    string
	bookingConfirmed string
	detailsSent      string

	helpText string // support phone
	exitText string
	apology  string
	invalid  string
	back     string
	nothing  string

	statusActive    string
	statusCompleted string
	statusAbandoned string

	smsDetails string // name, price, stars, phone
	smsBooking string // id, name, date, price, phone
	smsGoal    string // id, title, target, deadline
}

var messages = map[domain.Language]copyset{
	domain.LangEnglish: {
		mainTitle: "Welcome to TemberaNawe! 🏛️\nChoose what you want:",

		favoritesLabel:  "My favorites",
		bookingsLabel:   "My bookings",
		savingsLabel:    "Savings & goals",
		helpLabel:       "Help",
		changeLangLabel: "Change language",
		exitLabel:       "Exit",

		districtTitle: "Choose district in %s?",
		placesTitle:   "Where to visit in %s:",
		noPlaces:      "No places available",

		favoritesTitle: "Your favorite places:",
		noFavorites:    "No favorite places found",
		bookingsTitle:  "Your bookings:",
		noBookings:     "No bookings found",

		detailDetails:  "Get details",
		detailFavorite: "Add to favorites",
		detailBook:     "Book visit",
		detailHelp:     "Get help",

		savingsTitle: "Savings & goals:",
		depositLabel: "Save money",
		balanceLabel: "My savings",
		goalsLabel:   "My goals",
		balanceText:  "Total saved: %s\nStreak: %d day(s)\nPoints: %d",

		goalsTitle:      "Your savings goals:",
		createGoalLabel: "Create a goal",
		goalDetail:      "%s\nTarget: %s\nSaved: %s\nDeadline: %s\nStatus: %s",

		depositPrompt:  "Enter amount to save (RWF):",
		depositInvalid: "Amount must be a whole number of at least 1.",
		depositDone:    "Saved %s! 💰\nTotal: %s\nStreak: %d day(s)\nPoints earned: %d",

		goalTitlePrompt:  "Enter a name for your goal:",
		goalTitleInvalid: "Goal name must be 1-40 characters.",
		goalAmountPrompt: "Enter target amount (RWF):",
		goalDaysPrompt:   "In how many days do you want to reach it?",
		goalDaysInvalid:  "Days must be a whole number of at least 1.",
		goalCreated:      "Goal created! 🎯\n%s\nTarget: %s\nDeadline: %s",

		favoriteAdded:    "Added to your favorites!",
		bookingConfirmed: "Booking confirmed! You will receive details via SMS.",
		detailsSent:      "You will receive detailed information via SMS.",

		helpText: "TemberaNawe Help:\n📞 Call: %s\n📧 Email: info@temberanawe.rw\n🌐 Website: www.temberanawe.rw\n⏰ Hours: 24/7",
		exitText: "Thank you for using TemberaNawe!",
		apology:  "An error occurred. Please try again.",
		invalid:  "Invalid choice, try again.",
		back:     "Go back",
		nothing:  "Nothing available",

		statusActive:    "active",
		statusCompleted: "completed",
		statusAbandoned: "abandoned",

		smsDetails: "Thank you for your interest in %s! Here are the details:\n💰 Price: %s\n⭐ Rating: %s\n🕘 Opens: 09:00 AM\n🕔 Closes: 05:00 PM\n📞 Call: %s\nWe look forward to hosting you!",
		smsBooking: "✅ Booking confirmed!\n🎫 Booking ID: %s\n📍 Place: %s\n📅 Date: %s\n💰 Price: %s\n📞 Call: %s",
		smsGoal:    "🎯 New goal created!\nID: %s\nGoal: %s\nTarget: %s\nDeadline: %s",
	},
	domain.LangKinyarwanda: {
		mainTitle: "Murakaza neza kuri TemberaNawe!\n🏛️ Hitamo ibyo ushaka:",

		favoritesLabel:  "Ibyo nkunda",
		bookingsLabel:   "Ibyo nabonye",
		savingsLabel:    "Kuzigama n'intego",
		helpLabel:       "Ubufasha",
		changeLangLabel: "Guhindura ururimi",
		exitLabel:       "Gusohoka",

		districtTitle: "Akahe Karere muri %s?",
		placesTitle:   "Aho gusura muri %s:",
		noPlaces:      "Nta hantu haboneka",

		favoritesTitle: "Ahantu ukunda:",
		noFavorites:    "Nta hantu ukunda haboneka",
		bookingsTitle:  "Ahantu wateguye:",
		noBookings:     "Nta hantu wateguye haboneka",

		detailDetails:  "Kubona amakuru",
		detailFavorite: "Kuyongera mu byo nkunda",
		detailBook:     "Gutegura urugendo",
		detailHelp:     "Gusaba ubufasha",

		savingsTitle: "Kuzigama n'intego:",
		depositLabel: "Kuzigama amafaranga",
		balanceLabel: "Amafaranga nzigamye",
		goalsLabel:   "Intego zanjye",
		balanceText:  "Yose hamwe: %s\nIminsi ikurikirana: %d\nAmanota: %d",

		goalsTitle:      "Intego zo kuzigama:",
		createGoalLabel: "Gushyiraho intego",
		goalDetail:      "%s\nIntego: %s\nYabitswe: %s\nItariki ntarengwa: %s\nImiterere: %s",

		depositPrompt:  "Andika amafaranga ushaka kuzigama (RWF):",
		depositInvalid: "Umubare w'amafaranga ugomba kuba nibura 1.",
		depositDone:    "Wabitse %s! 💰\nYose hamwe: %s\nIminsi ikurikirana: %d\nAmanota wabonye: %d",

		goalTitlePrompt:  "Andika izina ry'intego yawe:",
		goalTitleInvalid: "Izina ry'intego rigomba kuba inyuguti 1-40.",
		goalAmountPrompt: "Andika amafaranga y'intego (RWF):",
		goalDaysPrompt:   "Ni mu minsi ingahe ushaka kuyigeraho?",
		goalDaysInvalid:  "Iminsi igomba kuba nibura 1.",
		goalCreated:      "Intego yashyizweho! 🎯\n%s\nIgamije: %s\nItariki ntarengwa: %s",

		favoriteAdded:    "Byongerewe mu byo ukunda!",
		bookingConfirmed: "Urugendo rwateguwe! Uraza kubona amakuru muri SMS.",
		detailsSent:      "Uraza kubona amakuru arambuye muri SMS.",

		helpText: "Ubufasha bwa TemberaNawe:\n📞 Hamagara: %s\n📧 Email: info@temberanawe.rw\n🌐 Website: www.temberanawe.rw\n⏰ Igihe: 24/7",
		exitText: "Murakoze gukoresha TemberaNawe!",
		apology:  "Habaye ikosa. Gerageza nanone.",
		invalid:  "Igitekerezo sicyo, ongera ugerageze.",
		back:     "Gusubira inyuma",
		nothing:  "Nta kiboneka",

		statusActive:    "irakora",
		statusCompleted: "yarangiye",
		statusAbandoned: "yaretswe",

		smsDetails: "Urakoze gusura %s! Dore amakuru y'ingenzi:\n💰 Igiciro: %s\n⭐ Amanota: %s\n🕘 Ifungura: 09:00 AM\n🕔 Ifunga: 05:00 PM\n📞 Hamagara: %s\nTuzishimira kubana namwe!",
		smsBooking: "✅ Urugendo rwateguwe neza!\n🎫 Nomero: %s\n📍 Ahantu: %s\n📅 Italiki: %s\n💰 Igiciro: %s\n📞 Hamagara: %s",
		smsGoal:    "🎯 Intego nshya yashyizweho!\nNomero: %s\nIntego: %s\nIgamije: %s\nItariki ntarengwa: %s",
	},
}

// rootPrompt greets before a language is chosen, so it is bilingual.
const rootPrompt = "Welcome to TemberaNawe! 🏛️\nChoose your language / Hitamo ururimi:"

// text returns the copy for lang, falling back to English.
func text(lang domain.Language) copyset {
	if cs, ok := messages[lang]; ok {
		return cs
	}
	return messages[domain.LangEnglish]
}

func statusLabel(cs copyset, status domain.GoalStatus) string {
	switch status {
	case domain.GoalCompleted:
		return cs.statusCompleted
	case domain.GoalAbandoned:
		return cs.statusAbandoned
	default:
		return cs.statusActive
	}
}
