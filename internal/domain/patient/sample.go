package patient

import "time"

// SamplePatients returns the records a new book is seeded with. Task due dates
// are placed relative to now so the today view is never empty on first start.
func SamplePatients(now time.Time) []Patient {
	today := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())

	alex := New("Alex Yeoh", "87438807", "alexyeoh@example.com", "Blk 30 Geylang Street 29, #06-40")
	alex = alex.
		WithTasks(mustList(NewTaskList(
			Task{Description: "Change dressing on left arm", Due: today},
			Task{Description: "Check blood pressure", Due: today.Add(5 * time.Hour), Recurrence: Recurrence{Every: 1, Unit: UnitDay}},
		))).
		WithConditions(mustList(NewConditionList(Condition{Description: "Hypertension"}))).
		WithMedications(mustList(NewMedicationList(Medication{Type: "Amlodipine", Dosage: "5 mg daily"}))).
		WithTags(mustList(NewTagList(Tag{Name: "ward3"})))

	bernice := New("Bernice Yu", "99272758", "berniceyu@example.com", "Blk 30 Lorong 3 Serangoon Gardens, #07-18")
	bernice = bernice.
		WithTasks(mustList(NewTaskList(
			Task{Description: "Administer insulin", Due: today.AddDate(0, 0, 1), Recurrence: Recurrence{Every: 1, Unit: UnitWeek}},
		))).
		WithConditions(mustList(NewConditionList(
			Condition{Description: "Type 2 diabetes"},
			Condition{Description: "Osteoarthritis"},
		))).
		WithMedications(mustList(NewMedicationList(Medication{Type: "Metformin", Dosage: "500 mg twice daily"}))).
		WithRemarks(mustList(NewRemarkList(Remark{Text: "Allergic to penicillin"}))).
		WithTags(mustList(NewTagList(Tag{Name: "ward3"}, Tag{Name: "fallrisk"})))

	charlotte := New("Charlotte Oliveiro", "93210283", "charlotte@example.com", "Blk 11 Ang Mo Kio Street 74, #11-04")
	charlotte = charlotte.
		WithRemarks(mustList(NewRemarkList(Remark{Text: "Prefers morning visits"}))).
		WithTags(mustList(NewTagList(Tag{Name: "homecare"})))

	return []Patient{alex, bernice, charlotte}
}

func mustList[L any](l L, err error) L {
	if err != nil {
		panic(err)
	}
	return l
}
