package domain

import "errors"

type NewSubscriber struct {
	Name  SubscriberName
	Email SubscriberEmail
}

// ParseNewSubscriber validates both fields and reports every failure at once.
func ParseNewSubscriber(name, email string) (NewSubscriber, error) {
	parsedName, nameErr := ParseSubscriberName(name)
	parsedEmail, emailErr := ParseSubscriberEmail(email)
	if err := errors.Join(nameErr, emailErr); err != nil {
		return NewSubscriber{}, err
	}

	return NewSubscriber{Name: parsedName, Email: parsedEmail}, nil
}
