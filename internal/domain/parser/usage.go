package parser

import (
	"fmt"
	"strings"

	"github.com/uninurse/uninurse/internal/domain/attribute"
)

// syntax describes how one attribute kind is written on the command line.
type syntax struct {
	prefix      string
	placeholder string
	example     string
}

var syntaxes = map[attribute.Kind]syntax{
	attribute.KindTask:       {PrefixTask, "TASK_DESCRIPTION | <DATE TIME> | <INTERVAL TIME_PERIOD>", "Change dressing | 22-4-22 1345 | 3 weeks"},
	attribute.KindCondition:  {PrefixCondition, "CONDITION", "Diabetes"},
	attribute.KindMedication: {PrefixMedication, "MEDICATION_TYPE | DOSAGE", "Amoxicillin | 0.5 g every 8 hours"},
	attribute.KindRemark:     {PrefixRemark, "REMARK", "Allergic to penicillin"},
	attribute.KindTag:        {PrefixTag, "TAG", "fallrisk"},
}

func titleKind(k attribute.Kind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func addUsage(k attribute.Kind) string {
	s := syntaxes[k]
	word := "add" + titleKind(k)
	return fmt.Sprintf("%s: Adds a %s to the patient identified by the index number used in the displayed patient list.\n"+
		"Parameters: PATIENT_INDEX (must be a positive integer) %s%s\n"+
		"Example: %s 1 %s%s", word, k, s.prefix, s.placeholder, word, s.prefix, s.example)
}

func editUsage(k attribute.Kind) string {
	s := syntaxes[k]
	word := "edit" + titleKind(k)
	return fmt.Sprintf("%s: Edits the %s identified by the index number in the %s list of the patient "+
		"identified by the index number used in the displayed patient list. "+
		"Existing values will be overwritten by the input value.\n"+
		"Parameters: PATIENT_INDEX (must be a positive integer) %s_INDEX (must be a positive integer) %s%s\n"+
		"Example: %s 1 2 %s%s", word, k, k, strings.ToUpper(string(k)), s.prefix, s.placeholder, word, s.prefix, s.example)
}

func deleteUsage(k attribute.Kind) string {
	word := "delete" + titleKind(k)
	return fmt.Sprintf("%s: Deletes the %s identified by the index number in the %s list of the patient "+
		"identified by the index number used in the displayed patient list.\n"+
		"Parameters: PATIENT_INDEX (must be a positive integer) %s_INDEX (must be a positive integer)\n"+
		"Example: %s 1 2", word, k, k, strings.ToUpper(string(k)), word)
}

func listUsage(k attribute.Kind) string {
	word := "list" + titleKind(k)
	return fmt.Sprintf("%s: Lists the patients that have at least one %s.\nExample: %s", word, k, word)
}

const (
	usageAdd = "add: Adds a patient to the uninurse book.\n" +
		"Parameters: " + PrefixName + "NAME " + PrefixPhone + "PHONE " + PrefixEmail + "EMAIL " + PrefixAddress + "ADDRESS " +
		"[" + PrefixTag + "TAG]... [" + PrefixCondition + "CONDITION]... [" + PrefixMedication + "MEDICATION_TYPE | DOSAGE]... " +
		"[" + PrefixRemark + "REMARK]... [" + PrefixTask + "TASK_DESCRIPTION]...\n" +
		"Example: add " + PrefixName + "John Doe " + PrefixPhone + "98765432 " + PrefixEmail + "johnd@example.com " +
		PrefixAddress + "311, Clementi Ave 2, #02-25 " + PrefixTag + "ward3 " + PrefixCondition + "Diabetes"
	usageDelete = "delete: Deletes the patient identified by the index number used in the displayed patient list.\n" +
		"Parameters: PATIENT_INDEX (must be a positive integer)\n" +
		"Example: delete 1"
	usageClear         = "clear: Clears all patients from the uninurse book.\nExample: clear"
	usageList          = "list: Lists all patients.\nExample: list"
	usageFind          = "find: Finds all patients whose names contain any of the specified keywords (case-insensitive).\nParameters: KEYWORD [MORE_KEYWORDS]...\nExample: find alice bob charlie"
	usageViewTask      = "viewTask: Shows the tasks of the patient identified by the index number used in the displayed patient list.\nParameters: PATIENT_INDEX (must be a positive integer)\nExample: viewTask 1"
	usagePatientsToday = "patientsToday: Lists the patients with tasks due today.\nExample: patientsToday"
	usageUndo          = "undo: Reverts the last change to the uninurse book.\nExample: undo"
	usageRedo          = "redo: Reapplies the last undone change.\nExample: redo"
	usageHelp          = "help: Shows this summary of commands.\nExample: help"
	usageExit          = "exit: Exits the program.\nExample: exit"
)
