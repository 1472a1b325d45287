package main

import "math/rand"


const lowercase = "abcdefghijklmnopqrstuvwxyz"


/* Generate a random lowercase string with a length between 1 and maxLen. */
func randomString(maxLen int) string {
    return randomStringExact(1 + rand.Intn(maxLen))
}


/* Generate a random lowercase string of exactly the given length. */
func randomStringExact(length int) string {
    buf := make([]byte, length)

    for i := range buf {
        buf[i] = lowercase[rand.Intn(len(lowercase))]
    }

    return string(buf)
}
