package holiday

import "cloud.google.com/go/civil"

// Default returns the built-in holiday table: major Indian festivals and
// common holidays for 2026.
func Default() *Calendar {
	return NewCalendar(map[civil.Date]string{
		mustDate("2026-01-01"): "New Year's Day",
		mustDate("2026-01-14"): "Makar Sankranti / Pongal",
		mustDate("2026-01-26"): "Republic Day",
		mustDate("2026-02-15"): "Maha Shivaratri",
		mustDate("2026-03-04"): "Holi",
		mustDate("2026-03-19"): "Ugadi / Gudi Padwa",
		mustDate("2026-03-26"): "Ram Navami",
		mustDate("2026-03-30"): "Eid al-Fitr",
		mustDate("2026-03-31"): "Mahavir Jayanti",
		mustDate("2026-04-03"): "Good Friday",
		mustDate("2026-04-14"): "Tamil New Year / Ambedkar Jayanti",
		mustDate("2026-05-01"): "Buddha Purnima",
		mustDate("2026-05-27"): "Eid al-Adha (Bakrid)",
		mustDate("2026-06-26"): "Muharram",
		mustDate("2026-08-15"): "Independence Day",
		mustDate("2026-08-28"): "Raksha Bandhan",
		mustDate("2026-09-04"): "Janmashtami",
		mustDate("2026-09-14"): "Ganesh Chaturthi",
		mustDate("2026-10-02"): "Gandhi Jayanti",
		mustDate("2026-10-10"): "Navratri Starts",
		mustDate("2026-10-20"): "Dussehra / Vijayadashami",
		mustDate("2026-11-08"): "Diwali",
		mustDate("2026-11-24"): "Guru Nanak Jayanti",
		mustDate("2026-12-25"): "Christmas",
	})
}

func mustDate(s string) civil.Date {
	date, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}
