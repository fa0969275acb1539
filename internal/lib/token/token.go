// Package token реализует генерацию токенов подтверждения подписки.
//
// Токен — случайная строка из 25 алфавитно-цифровых символов. Проверка на
// коллизии не выполняется: при алфавите в 62 символа и длине 25 вероятность
// повторения пренебрежимо мала для ожидаемых объёмов.
package token

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length длина токена подтверждения подписки.
const Length = 25

// New возвращает новый случайный токен из Length алфавитно-цифровых символов.
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
